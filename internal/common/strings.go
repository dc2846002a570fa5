package common

// UnknownStr is the rendering of enum values outside their known range.
const UnknownStr = "unknown"
