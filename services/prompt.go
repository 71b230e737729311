package services

import (
	"fmt"
	"strings"

	"freelancer-analyzer/serialize"
)

// keywordRule maps question substrings to a view. Rules are checked in
// slice order and the first hit wins.
type keywordRule struct {
	kind     AnalysisKind
	keywords []string
}

var classificationRules = []keywordRule{
	{KindCryptoPayment, []string{"крипто", "crypto", "криптовалют", "оплат", "payment", "bitcoin"}},
	{KindRegionalIncome, []string{"регион", "region", "распределя", "географ", "страна", "country"}},
	{KindExpertProjects, []string{"эксперт", "expert", "100", "проект", "project", "выполнил"}},
	{KindExperienceRates, []string{"опыт", "experience", "ставк", "rate", "навык", "skill", "часов"}},
	{KindSpecializationEarnings, []string{"специализац", "specialization", "категор", "category"}},
	{KindPlatformPerformance, []string{"платформ", "platform", "fiverr", "upwork", "freelancer", "топтал", "toptal"}},
}

// sampleQuestions holds one example per view, in AllKinds order.
var sampleQuestions = []string{
	"Насколько выше доход у фрилансеров, принимающих оплату в криптовалюте, по сравнению с другими способами оплаты?",
	"Как распределяется доход фрилансеров в зависимости от региона проживания?",
	"Какой процент фрилансеров, считающих себя экспертами, выполнил менее 100 проектов?",
	"Как связан уровень опыта фрилансера с его часовой ставкой?",
	"Какие специализации фрилансеров наиболее прибыльны?",
	"На какой платформе фрилансеры зарабатывают больше всего?",
	"Дайте общую сводку по рынку фрилансеров",
}

const promptInstructions = `ИНСТРУКЦИИ:
1. Дай четкий и структурированный ответ на русском языке
2. Используй конкретные числа и проценты из анализа
3. Объясни основные тренды и закономерности
4. Сделай практические выводы для фрилансеров
5. Используй простой и понятный язык
6. Форматируй ответ с заголовками и списками для лучшей читаемости`

// BuildPrompt embeds the question and the normalised analysis result in
// the instruction template sent to the model.
func BuildPrompt(question string, data any) (string, error) {
	summary, err := serialize.ToJSON(data, "  ")
	if err != nil {
		return "", fmt.Errorf("encode analysis: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Ты - эксперт аналитик данных фрилансеров. Ответь на вопрос пользователя, используя предоставленные статистические данные.\n\n")
	fmt.Fprintf(&sb, "ВОПРОС ПОЛЬЗОВАТЕЛЯ: %s\n\n", question)
	sb.WriteString("РЕЗУЛЬТАТЫ АНАЛИЗА ДАННЫХ:\n")
	sb.Write(summary)
	sb.WriteString("\n\n")
	sb.WriteString(promptInstructions)
	sb.WriteString("\n\nОТВЕТ:")
	return sb.String(), nil
}
