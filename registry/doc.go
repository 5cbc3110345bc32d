/*
Package registry holds the process-wide record type metadata used by the
DynamoDB backend.

Index Map Registry:
Associates Go types with key templates, which ddb.Collection expands on every
write:

	registry.RegisterIndexMap[User](map[string]string{
	    "PK":     "USER#{ID}",
	    "SK":     "PROFILE",
	    "GSI1PK": "EMAIL#{Email}",
	})

Type Registry:
Maps EntityType names to unmarshal functions. Paged reads fall back to it when
an item does not decode into the requested type:

	registry.RegisterType("User", func(item map[string]types.AttributeValue) (interface{}, error) {
	    var u User
	    err := attributevalue.UnmarshalMap(item, &u)
	    return &u, err
	})

Both registries are safe for concurrent use and are normally populated from
init functions.
*/
package registry
