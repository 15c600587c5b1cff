package models

// StringSlice is a []string serialized as JSON in the database.
type StringSlice []string
