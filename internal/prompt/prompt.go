// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jeranaias/healthbot-tui/internal/i18n"
)

const healthEN = `As a healthcare assistant, provide brief health information about: {{.Message}}

Give me ONLY:
- 1-2 key facts (max 2 sentences)
- 1 simple recommendation
- When to see doctor (1 sentence)

Keep response under 100 words. Be concise.`

const healthKM = `ជាជំនួយការសុខភាព សូមផ្តល់ព័ត៌មានសុខភាពខ្លីអំពី: {{.Message}}

ផ្តល់ឱ្យខ្ញុំតែ៖
- ការពិតសំខាន់ 1-2 (អតិបរមា 2 ប្រយោគ)
- ការណែនាំសាមញ្ញ 1
- ពេលណាត្រូវជួបគ្រូពេទ្យ (1 ប្រយោគ)

រក្សាចម្លើយឱ្យក្រោម 100 ពាក្យ។ សង្ខេប។`

const symptomEN = `Analyze these symptoms briefly: {{.Message}}

Provide:
- 2-3 possible causes with brief explanations
- 2 simple self-care tips
- Clear guidance on when to see a doctor

Keep under 150 words. Be helpful but direct.`

const symptomKM = `វិភាគរោគសញ្ញាទាំងនេះ៖ {{.Message}}

ផ្តល់៖
- មូលហេតុអាចមាន 2-3 ជាមួយការពន្យល់ខ្លី
- គន្លឹះថែទាំខ្លួនឯង 2
- ការណែនាំច្បាស់លាស់ពេលណាត្រូវជួបគ្រូពេទ្យ

រក្សាក្រោម 150 ពាក្យ។ ជួយប្រយោជន៍ប៉ុន្តែត្រង់ចំណុច។`

type templateKey struct {
	mode Mode
	lang string
}

var templates = map[templateKey]*template.Template{
	{Health, "en"}:  template.Must(template.New("health_en").Parse(healthEN)),
	{Health, "km"}:  template.Must(template.New("health_km").Parse(healthKM)),
	{Symptom, "en"}: template.Must(template.New("symptom_en").Parse(symptomEN)),
	{Symptom, "km"}: template.Must(template.New("symptom_km").Parse(symptomKM)),
}

// Data is the template input.
type Data struct {
	Message string
}

// Build fills the template for mode and lang with message. The message is
// inserted verbatim.
func Build(mode Mode, lang i18n.Language, message string) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	tpl, ok := templates[templateKey{mode, lang.Code()}]
	if !ok {
		return "", fmt.Errorf("no %s template for language %q: %w", mode, lang.Code(), i18n.ErrUnsupportedLanguage)
	}

	var b strings.Builder
	if err := tpl.Execute(&b, Data{Message: message}); err != nil {
		return "", fmt.Errorf("execute %s template: %w", tpl.Name(), err)
	}
	return b.String(), nil
}
