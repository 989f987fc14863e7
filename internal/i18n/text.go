// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package i18n

// Key identifies a UI string.
type Key string

const (
	WindowTitle         Key = "window_title"
	HealthQueryButton   Key = "health_query_btn"
	SymptomButton       Key = "symptom_checker_btn"
	LanguageButton      Key = "language_btn"
	InputPlaceholder    Key = "input_placeholder"
	SendButton          Key = "send_btn"
	ModeLabelHealth     Key = "mode_label_health"
	ModeLabelSymptom    Key = "mode_label_symptom"
	WelcomeMessage      Key = "welcome_message"
	Bot                 Key = "bot"
	You                 Key = "you"
	SwitchedToKhmer     Key = "switched_to_km"
	SwitchedToEnglish   Key = "switched_to_en"
	SwitchedToHealth    Key = "switched_to_health"
	SwitchedToSymptom   Key = "switched_to_symptom"
	MockHealthResponse  Key = "mock_health_response"
	MockSymptomResponse Key = "mock_symptom_response"
	Thinking            Key = "thinking"
	ErrorPrefix         Key = "error_prefix"
	ExportedTo          Key = "exported_to"
	Help                Key = "help"
)

// Keys lists every UI key, in display order.
var Keys = []Key{
	WindowTitle, HealthQueryButton, SymptomButton, LanguageButton,
	InputPlaceholder, SendButton, ModeLabelHealth, ModeLabelSymptom,
	WelcomeMessage, Bot, You, SwitchedToKhmer, SwitchedToEnglish,
	SwitchedToHealth, SwitchedToSymptom, MockHealthResponse,
	MockSymptomResponse, Thinking, ErrorPrefix, ExportedTo, Help,
}

var english = map[Key]string{
	WindowTitle:       "Healthcare Assistant",
	HealthQueryButton: "Health Query",
	SymptomButton:     "Symptom Checker",
	LanguageButton:    "ខ្មែរ",
	InputPlaceholder:  "Type your health question...",
	SendButton:        "Send",
	ModeLabelHealth:   "Mode: Health Query",
	ModeLabelSymptom:  "Mode: Symptom Checker",
	WelcomeMessage: "Hello! I'm your healthcare assistant.\n" +
		"- Ask a general **health question**\n" +
		"- Or switch to **Symptom Checker** and describe how you feel\n\n" +
		"*This assistant does not replace professional medical advice.*",
	Bot:               "🤖 Health Assistant",
	You:               "👤 You",
	SwitchedToKhmer:   "Language switched to Khmer",
	SwitchedToEnglish: "Language switched to English",
	SwitchedToHealth:  "Switched to Health Query mode",
	SwitchedToSymptom: "Switched to Symptom Checker mode",
	MockHealthResponse: "**General health tips**\n" +
		"- Drink plenty of water throughout the day\n" +
		"- Aim for 7-9 hours of sleep each night\n" +
		"- See a doctor if symptoms persist or get worse",
	MockSymptomResponse: "**Symptom guidance**\n" +
		"1. Rest and stay hydrated\n" +
		"2. Track your symptoms for 24-48 hours\n" +
		"3. Seek care right away for high fever, chest pain or trouble breathing",
	Thinking:    "AI is thinking...",
	ErrorPrefix: "API Error",
	ExportedTo:  "Transcript exported to",
	Help: "# Keys\n\n" +
		"- **Enter**: send message\n" +
		"- **F2** / **F3**: Health Query / Symptom Checker mode\n" +
		"- **Ctrl+L**: switch language\n" +
		"- **Ctrl+T**: switch theme\n" +
		"- **Esc**: cancel the pending request\n" +
		"- **Ctrl+E**: export transcript\n" +
		"- **PgUp** / **PgDn**: scroll\n" +
		"- **F1**: close help\n" +
		"- **Ctrl+C**: quit\n",
}

var khmer = map[Key]string{
	WindowTitle:       "ជំនួយការសុខភាព",
	HealthQueryButton: "សំណួរសុខភាព",
	SymptomButton:     "ពិនិត្យរោគសញ្ញា",
	LanguageButton:    "English",
	InputPlaceholder:  "វាយសំណួរសុខភាពរបស់អ្នក...",
	SendButton:        "ផ្ញើ",
	ModeLabelHealth:   "របៀប៖ សំណួរសុខភាព",
	ModeLabelSymptom:  "របៀប៖ ពិនិត្យរោគសញ្ញា",
	WelcomeMessage: "សួស្តី! ខ្ញុំជាជំនួយការសុខភាពរបស់អ្នក។\n" +
		"- សួរ **សំណួរសុខភាព** ទូទៅ\n" +
		"- ឬប្តូរទៅ **ពិនិត្យរោគសញ្ញា** ហើយរៀបរាប់ពីអារម្មណ៍របស់អ្នក\n\n" +
		"*ជំនួយការនេះមិនជំនួសដំបូន្មានពីគ្រូពេទ្យជំនាញទេ។*",
	Bot:               "🤖 ជំនួយការសុខភាព",
	You:               "👤 អ្នក",
	SwitchedToKhmer:   "បានប្តូរទៅភាសាខ្មែរ",
	SwitchedToEnglish: "បានប្តូរទៅភាសាអង់គ្លេស",
	SwitchedToHealth:  "បានប្តូរទៅរបៀបសំណួរសុខភាព",
	SwitchedToSymptom: "បានប្តូរទៅរបៀបពិនិត្យរោគសញ្ញា",
	MockHealthResponse: "**គន្លឹះសុខភាពទូទៅ**\n" +
		"- ផឹកទឹកឱ្យបានច្រើនពេញមួយថ្ងៃ\n" +
		"- គេងឱ្យបាន ៧-៩ ម៉ោងរៀងរាល់យប់\n" +
		"- ជួបគ្រូពេទ្យ ប្រសិនបើរោគសញ្ញានៅតែបន្ត ឬកាន់តែធ្ងន់ធ្ងរ",
	MockSymptomResponse: "**ការណែនាំអំពីរោគសញ្ញា**\n" +
		"១. សម្រាក និងផឹកទឹកឱ្យបានគ្រប់គ្រាន់\n" +
		"២. តាមដានរោគសញ្ញារបស់អ្នករយៈពេល ២៤-៤៨ ម៉ោង\n" +
		"៣. ទៅជួបគ្រូពេទ្យភ្លាម ប្រសិនបើគ្រុនក្តៅខ្លាំង ឈឺទ្រូង ឬពិបាកដកដង្ហើម",
	Thinking:    "AI កំពុងគិត...",
	ErrorPrefix: "កំហុស API",
	ExportedTo:  "បាននាំចេញប្រតិចារិកទៅ",
	Help: "# គ្រាប់ចុច\n\n" +
		"- **Enter**: ផ្ញើសារ\n" +
		"- **F2** / **F3**: របៀបសំណួរសុខភាព / ពិនិត្យរោគសញ្ញា\n" +
		"- **Ctrl+L**: ប្តូរភាសា\n" +
		"- **Ctrl+T**: ប្តូររចនាប័ទ្ម\n" +
		"- **Esc**: បោះបង់សំណើដែលកំពុងរង់ចាំ\n" +
		"- **Ctrl+E**: នាំចេញប្រតិចារិក\n" +
		"- **PgUp** / **PgDn**: រំកិល\n" +
		"- **F1**: បិទជំនួយ\n" +
		"- **Ctrl+C**: ចាកចេញ\n",
}

// Text returns the UI string for key in lang. Missing Khmer entries fall
// back to English; unknown keys return the key itself.
func Text(lang Language, key Key) string {
	if lang == Khmer {
		if s, ok := khmer[key]; ok {
			return s
		}
	}
	if s, ok := english[key]; ok {
		return s
	}
	return string(key)
}

// ThemeButton returns the label of the theme toggle. It shows the theme the
// button switches to, so a dark UI shows the sun.
func ThemeButton(dark bool) string {
	if dark {
		return "☀️"
	}
	return "🌙"
}

// SwitchedLanguageNotice returns the notice posted after switching to lang,
// written in lang.
func SwitchedLanguageNotice(lang Language) string {
	if lang == Khmer {
		return Text(lang, SwitchedToKhmer)
	}
	return Text(lang, SwitchedToEnglish)
}
