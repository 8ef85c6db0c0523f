package resolver

// DefaultTemplatePath は {time} 置換を行うテンプレートのパス
const DefaultTemplatePath = "/classic.html"

// DefaultPaths は配信を許可するデフォルトのパス一覧
var DefaultPaths = []string{
	"/index.html",
	"/spring.svg",
	"/spring.png",
	"/resources.html",
	"/styles.css",
	"/app.js",
	"/links.html",
	"/forms.html",
	"/classic.html",
	"/events.html",
	"/events.js",
}

// Whitelist は配信可能なパスの順序付き集合
//
// 構築後に変更されることはないため、複数のワーカーからロックなしで参照できる。
type Whitelist struct {
	paths []string
	index map[string]struct{}
}

// NewWhitelist は新しいWhitelistを作成する（重複は最初の出現のみ残す）
func NewWhitelist(paths ...string) *Whitelist {
	wl := &Whitelist{
		paths: make([]string, 0, len(paths)),
		index: make(map[string]struct{}, len(paths)),
	}

	for _, p := range paths {
		if _, exists := wl.index[p]; exists {
			continue
		}
		wl.index[p] = struct{}{}
		wl.paths = append(wl.paths, p)
	}

	return wl
}

// Contains はパスが含まれているかを完全一致で判定する
func (w *Whitelist) Contains(path string) bool {
	_, ok := w.index[path]
	return ok
}

// Paths は登録順のパス一覧のコピーを返す
func (w *Whitelist) Paths() []string {
	result := make([]string, len(w.paths))
	copy(result, w.paths)
	return result
}

// Len は登録されているパス数を返す
func (w *Whitelist) Len() int {
	return len(w.paths)
}
