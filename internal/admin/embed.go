package admin

import (
	"embed"
)

//go:embed api/openapi.yaml
var apiFS embed.FS

// OpenAPIDocument は埋め込まれたOpenAPIドキュメントを返す
func OpenAPIDocument() []byte {
	data, err := apiFS.ReadFile("api/openapi.yaml")
	if err != nil {
		// 埋め込みファイルはビルド時に存在が保証される
		panic(err)
	}
	return data
}
