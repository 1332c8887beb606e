package alignment

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"parmine/internal/services"
)

// Extension is the conventional alignment file suffix.
const Extension = ".aln.xml"

type xmlSegments struct {
	Segments string `xml:"segments,attr"`
}

type xmlMatch struct {
	Score       string      `xml:"score,attr"`
	Source      xmlSegments `xml:"source"`
	Translation xmlSegments `xml:"translation"`
}

type xmlAlignments struct {
	XMLName       xml.Name   `xml:"alignments"`
	SourceID      string     `xml:"source_id,attr"`
	TranslationID string     `xml:"translation_id,attr"`
	Matches       []xmlMatch `xml:"alignment"`
}

// WriteFile renders the alignment as .aln.xml at path. Scores are written
// with 4 decimal digits.
func WriteFile(path string, a *Alignment) error {
	doc := xmlAlignments{
		SourceID:      a.SourceID,
		TranslationID: a.TranslationID,
		Matches:       make([]xmlMatch, 0, len(a.Matches)),
	}
	for _, match := range a.Matches {
		doc.Matches = append(doc.Matches, xmlMatch{
			Score:       fmt.Sprintf("%.4f", match.Score),
			Source:      xmlSegments{Segments: strings.Join(match.SourceSegments, " ")},
			Translation: xmlSegments{Segments: strings.Join(match.TargetSegments, " ")},
		})
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal alignment: %w", err)
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write alignment %q: %w", path, err)
	}
	return nil
}

// ReadFile parses one .aln.xml file.
func ReadFile(path string) (*Alignment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "alignment", "read", path, err)
	}
	defer file.Close()

	root, err := xmlquery.Parse(file)
	if err != nil {
		return nil, services.Wrap(services.ErrData, "alignment", "read", path, err)
	}
	alignmentsNode := xmlquery.FindOne(root, "//alignments")
	if alignmentsNode == nil {
		return nil, services.Wrap(services.ErrData, "alignment", "read", path+": no alignments element", nil)
	}

	result := New(alignmentsNode.SelectAttr("source_id"), alignmentsNode.SelectAttr("translation_id"))
	for _, node := range xmlquery.Find(alignmentsNode, "alignment") {
		score, err := strconv.ParseFloat(node.SelectAttr("score"), 64)
		if err != nil {
			return nil, services.Wrap(services.ErrData, "alignment", "read",
				fmt.Sprintf("%s: bad score %q", path, node.SelectAttr("score")), err)
		}
		sourceNode := xmlquery.FindOne(node, "source")
		translationNode := xmlquery.FindOne(node, "translation")
		if sourceNode == nil || translationNode == nil {
			return nil, services.Wrap(services.ErrData, "alignment", "read",
				path+": alignment missing source or translation", nil)
		}
		result.Add(
			strings.Fields(sourceNode.SelectAttr("segments")),
			strings.Fields(translationNode.SelectAttr("segments")),
			score,
		)
	}
	return result, nil
}

// PairID names one document pair found in an alignment directory.
type PairID struct {
	SourceID      string
	TranslationID string
}

// ReadPairIDs lists the document-pair ids recorded by the *.aln.xml files in
// dir, in lexical file order.
func ReadPairIDs(dir string) ([]PairID, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	pairs := make([]PairID, 0, len(paths))
	for _, path := range paths {
		pair, err := readPairID(path)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func readPairID(path string) (PairID, error) {
	file, err := os.Open(path)
	if err != nil {
		return PairID{}, services.Wrap(services.ErrNotFound, "alignment", "read pair id", path, err)
	}
	defer file.Close()

	root, err := xmlquery.Parse(file)
	if err != nil {
		return PairID{}, services.Wrap(services.ErrData, "alignment", "read pair id", path, err)
	}
	node := xmlquery.FindOne(root, "//alignments")
	if node == nil {
		return PairID{}, services.Wrap(services.ErrData, "alignment", "read pair id", path+": no alignments element", nil)
	}
	return PairID{
		SourceID:      node.SelectAttr("source_id"),
		TranslationID: node.SelectAttr("translation_id"),
	}, nil
}
