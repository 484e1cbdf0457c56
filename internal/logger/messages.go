package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Server
		"Image server %s starting":          "画像サーバー %s を起動します",
		"Image server stopped":              "画像サーバーを停止しました",
		"Failed to parse request: %v":       "リクエストの解析に失敗しました: %v",
		"Failed to encode response: %v":     "レスポンスのエンコードに失敗しました: %v",
		"Method not found: %s":              "メソッドが見つかりません: %s",
		"Calling tool %s":                   "ツール %s を実行中",
		"Tool %s completed in %d ms":        "ツール %s が %d ms で完了しました",
		"Tool %s failed: %v":                "ツール %s が失敗しました: %v",
		"Config loaded from %s":             "設定を %s から読み込みました",
		"Failed to load config %s: %v":      "設定 %s の読み込みに失敗しました: %v",

		// Startup
		"Image server %s (built %s, commit %s)": "画像サーバー %s (ビルド %s, コミット %s)",
		"Server error: %v":                      "サーバーエラー: %v",

		// Image operations
		"Loaded %s: %dx%d %s":               "%s を読み込みました: %dx%d %s",
		"Resized to %dx%d":                  "%dx%d にリサイズしました",
		"Cropped to %dx%d":                  "%dx%d に切り抜きました",
		"Thumbnail %dx%d":                   "サムネイル %dx%d",
		"Overlay %s at %s":                  "%s を %s に重ねました",
		"Text strip %dx%d at %s":            "テキスト帯 %dx%d を %s に配置しました",
		"Applied filter %s":                 "フィルター %s を適用しました",
		"Wrote %s (%dx%d, %s)":              "%s を書き出しました (%dx%d, %s)",
		"Encoded %d bytes as %s":            "%d バイトを %s としてエンコードしました",
	})
}
