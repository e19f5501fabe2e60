package i18n

// Translator retrieves localized messages for diagnostic codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "incorrect_type":
			if e, f := data["expected"], data["found"]; e != "" || f != "" {
				return "型が不正です (期待: " + e + ", 実際: " + f + ")"
			}
			return "型が不正です"
		case "out_of_range":
			if data["min"] != "" || data["max"] != "" {
				return data["got"] + " は " + data["type"] + " の範囲外です (" + data["min"] + ".." + data["max"] + ")"
			}
			return "範囲外です"
		case "unknown_key":
			if k := data["key"]; k != "" {
				return "未知のキーです: " + k
			}
			return "未知のキーです"
		case "required":
			if k := data["key"]; k != "" {
				return "必須キーが不足しています: " + k
			}
			return "必須キーが不足しています"
		case "duplicate_key":
			if k := data["key"]; k != "" {
				return "キーが重複しています: " + k
			}
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "incorrect_type":
			if e, f := data["expected"], data["found"]; e != "" || f != "" {
				return "incorrect type, expected " + e + ", found " + f
			}
			return "incorrect type"
		case "out_of_range":
			if data["min"] != "" || data["max"] != "" {
				return data["got"] + " is out of range for " + data["type"] + ", expected a value between " + data["min"] + " and " + data["max"]
			}
			return "out of range"
		case "unknown_key":
			if k := data["key"]; k != "" {
				return "unknown key " + k
			}
			return "unknown key"
		case "required":
			if k := data["key"]; k != "" {
				return "missing required key " + k
			}
			return "missing required key"
		case "duplicate_key":
			if k := data["key"]; k != "" {
				return "key " + k + " duplicated"
			}
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
