package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Batch
		"Discovered %d sources in %s":    "%d 件のソースを %s で検出しました",
		"Failed to discover sources: %s": "ソースの検出に失敗しました: %s",
		"[%d/%d] Processing %s":          "[%d/%d] %s を処理中",
		"Interrupted, stopping batch":    "中断されました。バッチを停止します",
		"Failed to write metrics: %s":    "メトリクスの書き込みに失敗しました: %s",
		"Batch finished: %d processed, %d skipped, %d failed, %d clips written": "バッチ完了: 処理 %d 件, スキップ %d 件, 失敗 %d 件, クリップ %d 本を書き出し",

		// Sources
		"Skipping %s: clips already exist":       "%s をスキップ: クリップが既に存在します",
		"Skipping %s: flow line not found at %s": "%s をスキップ: フローラインが %s に見つかりません",
		"Wrote %d clips for %s (plan %v)":        "%d 本のクリップを %s から書き出しました (計画 %v)",
		"Failed to process %s: %s":               "%s の処理に失敗しました: %s",
		"Failed to save debug output: %s":        "デバッグ出力の保存に失敗しました: %s",

		// Preview
		"Frame counts differ (%d vs %d), holding the last frame": "フレーム数が異なります (%d / %d)。最終フレームを保持します",

		// Metadata
		"Flow line not found for %s":              "%s のフローラインが見つかりません",
		"Found %d media files, %d with flow line": "%d 件のメディアファイルを検出 (フローライン付き %d 件)",
		"Metadata saved to %s":                    "メタデータを %s に保存しました",
	})

	l10n.Register("zh", l10n.LexiconMap{
		// Batch
		"Discovered %d sources in %s":    "在 %[2]s 中发现 %[1]d 个源",
		"Failed to discover sources: %s": "发现源失败: %s",
		"[%d/%d] Processing %s":          "[%d/%d] 正在处理 %s",
		"Interrupted, stopping batch":    "已中断，停止批处理",
		"Failed to write metrics: %s":    "写入指标失败: %s",
		"Batch finished: %d processed, %d skipped, %d failed, %d clips written": "批处理完成: 处理 %d 个, 跳过 %d 个, 失败 %d 个, 写出 %d 个片段",

		// Sources
		"Skipping %s: clips already exist":       "跳过 %s: 片段已存在",
		"Skipping %s: flow line not found at %s": "跳过 %s: 在 %s 未找到流线",
		"Wrote %d clips for %s (plan %v)":        "已为 %[2]s 写出 %[1]d 个片段 (计划 %[3]v)",
		"Failed to process %s: %s":               "处理 %s 失败: %s",
		"Failed to save debug output: %s":        "保存调试输出失败: %s",

		// Preview
		"Frame counts differ (%d vs %d), holding the last frame": "帧数不同 (%d / %d)，保持最后一帧",

		// Metadata
		"Flow line not found for %s":              "未找到 %s 的流线",
		"Found %d media files, %d with flow line": "发现 %d 个媒体文件，其中 %d 个有流线",
		"Metadata saved to %s":                    "元数据已保存到 %s",
	})
}
