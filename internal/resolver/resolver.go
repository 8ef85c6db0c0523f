// Package resolver は要求パスをホワイトリストで検証し、ファイルの位置とContent-Typeを決定する
package resolver

import (
	"errors"
	"mime"
	"path/filepath"
)

// ErrNotFound はパスがホワイトリストに含まれない場合に返される
var ErrNotFound = errors.New("パスが見つかりません")

// Kind はリソースの応答方法
type Kind int

const (
	KindStatic   Kind = iota // ファイルの内容をそのまま返す
	KindTemplate             // プレースホルダーを置換して返す
)

func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// Resource は検証済みパスから導出されたリソース
type Resource struct {
	Path        string // 要求されたパス
	FilePath    string // ファイルシステム上の位置
	ContentType string // 判定できない場合は空
	Kind        Kind
}

// Resolver はホワイトリストに基づいてパスを解決する
type Resolver struct {
	root         string
	whitelist    *Whitelist
	templatePath string
}

// New は新しいResolverを作成する
func New(root string, whitelist *Whitelist, templatePath string) *Resolver {
	return &Resolver{
		root:         root,
		whitelist:    whitelist,
		templatePath: templatePath,
	}
}

// Resolve はパスを解決する
//
// 照合は大文字小文字を区別する完全一致で、正規化やデコードは行わない。
func (r *Resolver) Resolve(path string) (Resource, error) {
	if !r.whitelist.Contains(path) {
		return Resource{}, ErrNotFound
	}

	filePath := filepath.Join(r.root, filepath.FromSlash(path))
	contentType, _ := ContentTypeByName(filePath)

	kind := KindStatic
	if r.templatePath != "" && path == r.templatePath {
		kind = KindTemplate
	}

	return Resource{
		Path:        path,
		FilePath:    filePath,
		ContentType: contentType,
		Kind:        kind,
	}, nil
}

// Whitelist は参照中のホワイトリストを返す
func (r *Resolver) Whitelist() *Whitelist {
	return r.whitelist
}

// Root はルートディレクトリを返す
func (r *Resolver) Root() string {
	return r.root
}

// ContentTypeByName は拡張子からContent-Typeを推定する
//
// charset などのパラメーターは取り除く。判定できない場合は false を返す。
func ContentTypeByName(name string) (string, bool) {
	ext := filepath.Ext(name)
	if ext == "" {
		return "", false
	}

	typ := mime.TypeByExtension(ext)
	if typ == "" {
		return "", false
	}

	mediaType, _, err := mime.ParseMediaType(typ)
	if err != nil {
		return "", false
	}

	return mediaType, true
}
