// Package main provides localization for the flowclip CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input/Output": "入出力",
		"Planning":     "クリップ計画",
		"Sources":      "ソース",
		"Encoding":     "エンコード",
		"Reporting":    "レポート",
		"Debug":        "デバッグ",
		"Logging":      "ログ",

		// Root command
		"Cut paired video and flow-line streams into fixed-length training clips":                              "動画とフローラインを固定長の学習用クリップに分割",
		"flowclip segments every video or image folder in a directory into clips and writes them with ffmpeg.": "flowclipはディレクトリ内の動画と画像フォルダをクリップに分割し、ffmpegで書き出します。",

		// Version command
		"Show version information": "バージョン情報を表示",
		"flowclip version %s":      "flowclip バージョン %s",

		// Split command
		"Split every source of a directory into clips": "ディレクトリ内の全ソースをクリップに分割",

		"Discover videos and image folders under the input directory and write fixed-length clips to the output directory.": "入力ディレクトリの動画と画像フォルダを検出し、固定長クリップを出力ディレクトリに書き出します。",
		"Input directory of videos and image folders":                              "動画と画像フォルダの入力ディレクトリ",
		"Output directory for clips (default: ./clips)":                            "クリップの出力ディレクトリ（デフォルト: ./clips）",
		"YAML configuration file":                                                  "YAML設定ファイル",
		"Preset (fixed5, uniform, greedy)":                                         "プリセット（fixed5, uniform, greedy）",
		"Clip length policy (fixed, uniform, greedy)":                              "クリップ長ポリシー（fixed, uniform, greedy）",
		"Clip length of the fixed policy":                                          "fixedポリシーのクリップ長",
		"Candidate clip lengths, comma separated (e.g., 33,29,25)":                 "候補クリップ長（カンマ区切り、例: 33,29,25）",
		"Short source handling (reject, short, repeat)":                            "短いソースの扱い（reject, short, repeat）",
		"Process each source together with its flow-line stream":                   "各ソースをフローラインと対で処理",
		"Directory of the flow-line streams inside the input (default: flow_line)": "入力内のフローラインディレクトリ（デフォルト: flow_line）",
		"Output frame rate (default: 5)":                                           "出力フレームレート（デフォルト: 5）",
		"Video codec (default: h264)":                                              "動画コーデック（デフォルト: h264）",
		"Video quality (0-10, 10 is best)":                                         "動画品質（0-10、10が最高）",
		"Clip container extension (default: mp4)":                                  "クリップのコンテナ拡張子（デフォルト: mp4）",
		"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)":     "ffmpeg実行ファイルのパス（未指定時はFFMPEG_PATH環境変数、次にPATH）",
		"Output execution summary to file (Markdown format)":                       "実行サマリーをファイルに出力（Markdown形式）",
		"Write Prometheus metrics to file":                                         "Prometheusメトリクスをファイルに出力",
		"Disable progress bars":                                                    "プログレスバーを無効化",
		"Exit with an error when any source fails":                                 "失敗したソースがあればエラー終了",
		"Enable debug output":                                                      "デバッグ出力を有効化",
		"Directory for debug output":                                               "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Meta command
		"Write the training metadata CSV of a folder":               "フォルダの学習用メタデータCSVを作成",
		"Dataset root; paths in the table are relative to it":       "データセットのルート（表のパスはここからの相対パス）",
		"Folder to scan, relative to the dataset root":              "走査するフォルダ（ルートからの相対パス）",
		"Output CSV path (default: {base}/metadata.csv)":            "出力CSVパス（デフォルト: {base}/metadata.csv）",
		"Prompt written to every row":                               "全行に書き込むプロンプト",
		"Directory of the flow-line counterparts inside the folder": "フォルダ内のフローラインディレクトリ",

		// Preview command
		"Create a side-by-side preview of a clip and its flow-line clip": "クリップとフローラインを並べたプレビューを作成",
		"Output MP4 file path (required)":                                "出力MP4ファイルパス（必須）",
		"Gap between videos in pixels":                                   "動画間の隙間（ピクセル）",
		"Two video arguments are required":                               "2つの動画引数が必要です",
		"Creating comparison video: %s + %s → %s":                        "比較動画を作成中: %s + %s → %s",
		"Output saved to %s (%d frames, %dx%d)":                          "出力を %s に保存しました（%d フレーム, %dx%d）",

		// Checkpoint commands
		"Rearrange the keys of safetensors checkpoints":             "safetensorsチェックポイントのキーを整理",
		"Split a checkpoint into adapter and backbone weights":      "チェックポイントをアダプタとバックボーンに分割",
		"Remove training prefixes from checkpoint keys":             "チェックポイントのキーから学習時の接頭辞を削除",
		"Keep only the adapter keys of a checkpoint":                "チェックポイントのアダプタキーのみを残す",
		"Input .safetensors file":                                   "入力 .safetensors ファイル",
		"Adapter output (default: <input>_adapter.safetensors)":     "アダプタの出力先（デフォルト: <input>_adapter.safetensors）",
		"Backbone output (default: <input>_dit.safetensors)":        "バックボーンの出力先（デフォルト: <input>_dit.safetensors）",
		"Output file (default: <input>_clean.safetensors)":          "出力ファイル（デフォルト: <input>_clean.safetensors）",
		"Output file (default: <input>_adapter.safetensors)":        "出力ファイル（デフォルト: <input>_adapter.safetensors）",
		"Adapter key prefixes, comma separated":                     "アダプタキーの接頭辞（カンマ区切り）",
		"Prefixes to remove, comma separated; the first match wins": "削除する接頭辞（カンマ区切り、最初の一致のみ）",
		"Key prefixes to keep, comma separated":                     "残すキーの接頭辞（カンマ区切り）",
		"Saved %d tensors (%d bytes) to %s":                         "%d 個のテンソル（%d バイト）を %s に保存しました",
		"Renamed %d of %d keys":                                     "%d / %d 個のキーを変更しました",
		"No keys matched the adapter prefixes":                      "アダプタの接頭辞に一致するキーがありません",

		// Runtime messages
		"Interrupted":                 "中断されました",
		"%d sources failed":           "%d 件のソースが失敗しました",
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
	})
}
