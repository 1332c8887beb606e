package document

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"

	"parmine/internal/services"
)

// ReadLTFDocs parses every DOC element of an LTF file. Segment text is the
// space-joined TOKEN contents of each SEG.
func ReadLTFDocs(path string) ([]*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "document", "read ltf", path, err)
	}
	defer file.Close()

	root, err := xmlquery.Parse(file)
	if err != nil {
		return nil, services.Wrap(services.ErrData, "document", "read ltf", path, err)
	}

	docNodes := xmlquery.Find(root, "//DOC")
	if len(docNodes) == 0 {
		return nil, services.Wrap(services.ErrData, "document", "read ltf", path+": no DOC elements", nil)
	}

	docs := make([]*Document, 0, len(docNodes))
	for _, docNode := range docNodes {
		doc := New(docNode.SelectAttr("id"), docNode.SelectAttr("lang"))
		for _, segNode := range xmlquery.Find(docNode, ".//SEG") {
			tokens := make([]string, 0, 16)
			for _, tokNode := range xmlquery.Find(segNode, ".//TOKEN") {
				tokens = append(tokens, tokNode.InnerText())
			}
			if err := doc.AddSegment(segNode.SelectAttr("id"), strings.Join(tokens, " ")); err != nil {
				return nil, err
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ReadLTFDoc parses an LTF file expected to hold exactly one document.
func ReadLTFDoc(path string) (*Document, error) {
	docs, err := ReadLTFDocs(path)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, services.Wrap(services.ErrData, "document", "read ltf",
			path+": expected exactly one DOC", nil)
	}
	return docs[0], nil
}

// ReadLTFDir parses every *.ltf.xml file in dir, in lexical path order.
func ReadLTFDir(dir string) ([]*Document, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.ltf.xml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	var docs []*Document
	for _, path := range paths {
		fileDocs, err := ReadLTFDocs(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, fileDocs...)
	}
	return docs, nil
}

// LTFPath resolves the conventional corpus location of a document's LTF file:
// <foundDir>/<lang>/ltf/<docID>.ltf.xml, with the language taken from the
// document id prefix.
func LTFPath(foundDir, docID string) string {
	return filepath.Join(foundDir, LangPrefix(docID), "ltf", docID+".ltf.xml")
}
