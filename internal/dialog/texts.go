package dialog

// User-facing strings. Markup is Telegram Markdown (v1): *bold*, _italic_,
// `code`. Texts are Russian, matching the deployment audience.
const (
	textMainMenu = "📊 *Расчет оборачиваемости капитала*\n\n" +
		"Выберите действие:"

	textCalculateInstructions = "🧮 *Введите данные для расчета*\n\n" +
		"*Формат команды:*\n" +
		"`/calculate выручка активы собственный_капитал заемный_капитал`\n\n" +
		"_период в днях - необязательно, по умолчанию 365_\n\n" +
		"*Примеры:*\n" +
		"`/calculate 2000000 1000000 500000 300000`\n" +
		"`/calculate 1000000 600000 300000 150000 365`\n\n" +
		"Можно также отправить числа следующим сообщением без команды.\n\n" +
		"*Что рассчитывается:*\n" +
		"• Оборачиваемость активов = выручка ÷ активы\n" +
		"• Оборачиваемость СК = выручка ÷ собственный капитал\n" +
		"• Оборачиваемость ЗК = выручка ÷ заемный капитал\n" +
		"• Период оборота = дни ÷ оборачиваемость активов\n\n" +
		"*Примечание:* в примерах из задания вероятно допущена ошибка в расчете оборачиваемости заемного капитала.\n" +
		"⚠️ _В примере 1: в задании указано 3.3, но по расчету выходит 6.7_\n" +
		"⚠️ _В примере 2: в задании указано 2.0, но по расчету выходит 6.7_"

	textTestMenu = "📋 *Примеры из задания*\n\n" +
		"Выберите пример для проверки:"

	textInvalidInput = "❌ *Неверный формат!*\n\n" +
		"Используйте: `/calculate 2000000 1000000 500000 300000`"

	textRangeErrorHeader = "❌ *Ошибки в данных:*"

	textCalculationDone = "✅ *Расчет завершен*"

	textNoCalculation = "❌ Сначала выполните расчет"

	textUnexpectedError = "❌ *Ошибка*\n\nПроверьте правильность ввода чисел"

	titleExample1 = "📄 Пример 1 из задания"
	titleExample2 = "📄 Пример 2 из задания"
	titleMyData   = "📝 Мой последний расчет"
)

// Button labels.
const (
	btnCalculate      = "🧮 Сделать расчет"
	btnTests          = "📋 Примеры из задания"
	btnBack           = "🔙 Назад"
	btnExample1       = "📄 Пример 1"
	btnExample2       = "📄 Пример 2"
	btnMyData         = "📝 Мой расчет"
	btnNewCalculation = "🔄 Новый расчет"
	btnExamples       = "📋 Примеры"
	btnBackToTests    = "🔙 Назад к примерам"
	btnToMenu         = "🏠 В меню"
)
