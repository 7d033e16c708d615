// Package database defines the persisted data model and the database
// bootstrap for the XML decomposition service.
package database

// This file is kept as the entry point of the model package.
// The concrete model definitions are split across:
// - file_models.go: ingested document records (File)
// - xml_models.go: decomposed XML projection (Tag, Attribute)
