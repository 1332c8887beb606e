// Command parmine mines parallel sentence pairs from bilingual document
// collections: it scores candidate sentence pairs with configurable signals,
// realigns document pairs one-to-one, evaluates scorers against gold pairs,
// compiles Giza translation tables, and posts segments to a search index.
package main
