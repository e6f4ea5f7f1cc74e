// Package textutil provides the Unicode helpers shared by the classifier and
// the renamer: NFC normalization, case folding, and whole-word counting.
//
// Text is normalized to NFC before any comparison so that a keyword typed as
// "reunión" matches a title that stores the accent as a combining mark.
package textutil
