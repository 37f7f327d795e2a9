package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "format").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須の値が不足しています"
		case "invalid_format":
			return "形式が不正です"
		case "invalid_enum":
			return "許可されていない値です"
		case "out_of_range":
			return "範囲外の値です"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "wrong_length":
			return "長さが一致しません"
		case "sibling_length":
			return "兄弟要素と長さが一致しません"
		case "not_ascending":
			return "昇順になっていません"
		case "not_descending":
			return "降順になっていません"
		case "repeated_value":
			return "値が重複しています"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required value missing"
		case "invalid_format":
			return "invalid format"
		case "invalid_enum":
			return "value not allowed"
		case "out_of_range":
			return "out of range"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "wrong_length":
			return "wrong length"
		case "sibling_length":
			return "length differs from earlier siblings"
		case "not_ascending":
			return "breaks ascending order"
		case "not_descending":
			return "breaks descending order"
		case "repeated_value":
			return "repeats an earlier value"
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
