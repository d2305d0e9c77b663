// Package vipbot provides a customer-service assistant for a product
// catalog published as a flat file. It polls the file's revision marker,
// keeps the parsed catalog and FAQ in memory, and answers commands from
// the cached data, forwarding free-form questions to a generative model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, http/).
package vipbot
