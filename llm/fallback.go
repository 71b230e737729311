package llm

// FallbackResponse is shown instead of a completion whenever the LLM
// service cannot be reached or is not configured.
const FallbackResponse = `
🤖 Анализ данных выполнен успешно!

К сожалению, Claude LLM сервис недоступен, но данные были проанализированы.

📊 **Чтобы получить ответы Claude:**

1. **Получите Anthropic API ключ:**
   - Зарегистрируйтесь на https://console.anthropic.com/
   - Создайте API ключ в разделе API Keys

2. **Установите переменную окружения:**
   export ANTHROPIC_API_KEY="your-api-key-here"

3. **Или добавьте её в .env файл:**
   ANTHROPIC_API_KEY=your-api-key-here

4. **Перезапустите команду:**
   freelancer-analyzer ask "ваш вопрос"

💡 **Совет:** команда 'analyze' показывает детальные данные анализа без LLM.
`
