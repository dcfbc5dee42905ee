package catpicture

import "strings"

// CompressANSI compresses a rendered ANSI image by merging adjacent
// cells that share the same foreground and background attributes into
// a single escape followed by the run of characters, with one reset
// per run. Unescaped characters (blank cells below the draw
// threshold) pass through untouched and line breaks are preserved.
func CompressANSI(ansiImage string) string {
	var compressed strings.Builder

	lines := strings.Split(ansiImage, "\n")
	for i, line := range lines {
		// Split keeps an empty trailing element for the final newline.
		if i == len(lines)-1 && line == "" {
			break
		}
		compressLine(line, &compressed)
		compressed.WriteByte('\n')
	}

	return compressed.String()
}

// compressLine merges the attribute runs of a single output row.
func compressLine(line string, out *strings.Builder) {
	var currentFg, currentBg string
	var runFg, runBg string
	var run strings.Builder

	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(formatRun(runFg, runBg, run.String()))
		run.Reset()
	}

	segments := strings.Split(line, ESC+"[")
	for i, segment := range segments {
		if segment == "" {
			continue
		}

		var text string
		if i == 0 {
			// Text before the first escape carries no attributes.
			text = segment
			currentFg, currentBg = "", ""
		} else {
			code, rest, found := strings.Cut(segment, "m")
			if !found {
				text = segment
			} else {
				text = rest
				switch {
				case code == "0":
					currentFg, currentBg = "", ""
				case isForegroundCode(code):
					currentFg = code
				case isBackgroundCode(code):
					currentBg = code
				}
			}
		}

		if text == "" {
			continue
		}
		if currentFg != runFg || currentBg != runBg {
			flush()
			runFg, runBg = currentFg, currentBg
		}
		run.WriteString(text)
	}
	flush()
}

func isForegroundCode(code string) bool {
	return strings.HasPrefix(code, "38;") ||
		(len(code) == 2 && code[0] == '3')
}

func isBackgroundCode(code string) bool {
	return strings.HasPrefix(code, "48;") ||
		(len(code) == 2 && code[0] == '4')
}

// formatRun emits one attribute run: a combined foreground;background
// escape, the characters, and a single reset. A run with no
// attributes is emitted bare.
func formatRun(fg, bg, text string) string {
	if fg == "" && bg == "" {
		return text
	}
	var code strings.Builder
	code.WriteString(ESC)
	code.WriteByte('[')
	if fg != "" {
		code.WriteString(fg)
		if bg != "" {
			code.WriteByte(';')
		}
	}
	if bg != "" {
		code.WriteString(bg)
	}
	code.WriteByte('m')
	code.WriteString(text)
	code.WriteString(ESC + "[0m")
	return code.String()
}
