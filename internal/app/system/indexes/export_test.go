package indexes

// ListExisting exposes listExisting to the external indexes_test package.
var ListExisting = listExisting
