package output

// SchemaVersion is the version of clw's own NDJSON output contract.
// It is unrelated to the log entry schema versions clw detects.
// Increment this when making breaking changes to the output format.
const SchemaVersion = 1
