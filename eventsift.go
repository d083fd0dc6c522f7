// Package eventsift extracts structured event records from unstructured HTML
// pages. It fetches pages under a concurrency cap, strips them down to
// event-relevant text, asks a question-answering capability for each field,
// and cleans the answers into typed values.
//
// This package contains domain types, interfaces and the pure cleaning logic,
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// gemini/, sqlite/).
package eventsift
