// Package config loads, normalizes, and validates DocCleaner configuration data.
//
// It supplies repository defaults (allowed extensions, the ordered topic list
// with keywords and output folders, quarantine and state directories), expands
// user paths including tilde shortcuts, reads TOML files, and honours the
// DOCCLEANER_QUARANTINE_DIR environment override. The Config value is built
// once at startup and handed by pointer to every component, so tests can run
// isolated configurations side by side.
//
// Topics are an ordered list on purpose: the classifier breaks score ties by
// that order, so the order written in the TOML file is the contract.
package config
