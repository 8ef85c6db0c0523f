// Package protocol は最小限のHTTP/1.1ワイヤーフォーマットを扱います。
//
// 責務:
//   - リクエストラインの読み込みと分割
//   - ステータスライン・ヘッダー・ボディの直列化
//
// 仕様:
//   - 読み込むのは最初の1行のみ（ヘッダーとボディは読まない）
//   - 空白区切りでちょうど3トークンでなければ不正リクエスト
//   - レスポンスは常に Connection: close を含む
//   - チャンク転送・Keep-Aliveには対応しない
package protocol
