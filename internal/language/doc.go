// Package language provides unified language code normalization and mapping.
//
// Track metadata arrives as ISO 639-1 codes, ISO 639-2 terminology or
// bibliographic codes, IETF tags, or plain words. Everything is folded to
// lowercase ISO 639-2 here so the classifier compares like with like. Codes
// missing from the local table fall back to the CLDR data in x/text.
package language
