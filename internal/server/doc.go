// Package server は、TCP接続の受け付けとリクエスト処理を管理します。
//
// このパッケージは、接続の受け付けループ、ワーカープールへの受け渡し、
// 1接続ごとのリクエスト処理（解析・検証・応答）を担当します。
//
// 責務:
//   - リスナーの作成と接続の受け付け
//   - 接続ごとの処理をワーカープールへ投入
//   - リクエストラインの解析とホワイトリストによる検証
//   - 静的ファイルとテンプレートの応答
//   - 管理APIの起動と停止
//
// 仕様:
//   - 1接続につき1リクエスト・1レスポンスで必ず切断する
//   - 不正なリクエストには400、未登録パスには404をボディなしで返す
//   - ファイル読み込みの失敗には応答せず、ログに記録して切断する
//   - 読み込み・書き込みタイムアウトは設けない
//   - グレースフルシャットダウンに対応
package server
