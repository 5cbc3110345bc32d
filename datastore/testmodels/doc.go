// Package testmodels holds typed records shared by backend tests and the
// docstore CLI. Player registers its DynamoDB index map on import.
package testmodels
