// Package admin は、サーバーの稼働状態を確認する管理APIを提供します。
//
// 責務:
//   - ヘルスチェックエンドポイントの提供
//   - ワーカープールと配信設定の状態の公開
//   - APIドキュメント（OpenAPI）の配信
//
// 仕様:
//   - Ginを使用
//   - ファイル配信用のポートとは別のリスナーで動作する
//   - 設定で有効にした場合のみ起動する
package admin
