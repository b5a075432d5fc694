// Package schemas embeds the OpenAPI document that the server validates
// tool-call requests against.
package schemas

import _ "embed"

//go:embed openapi.yaml
var OpenAPISpec []byte
