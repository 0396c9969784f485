// Package common contains constants shared by the sitegen client layers.
package common

const (
	// AdminEmailHeaderName carries the session owner's email on admin calls.
	AdminEmailHeaderName = "X-Admin-Email"

	// RequestIDHeaderName correlates client logs with a single HTTP exchange.
	RequestIDHeaderName = "X-Request-Id"

	// SessionKey is the metadata slot holding the serialized session user.
	SessionKey = "user"

	// DefaultGenerationCost is the energy price of one generation request.
	DefaultGenerationCost int64 = 20

	// DefaultArtifactFileName is the name used when exporting generated markup.
	DefaultArtifactFileName = "generated-site.html"
)

// User-facing messages. The service speaks Russian to its users.
const (
	MsgConnectivity      = "Не удалось подключиться к серверу"
	MsgGeneric           = "Что-то пошло не так"
	MsgBalanceNotUpdated = "Не удалось обновить баланс"
	MsgGenerationFailed  = "Не удалось создать сайт"
	MsgNotEnoughEnergy   = "Недостаточно энергии"
)

// Notification titles and fixed descriptions shown by the screen.
const (
	TitleError          = "Ошибка"
	TitleLoggedIn       = "Вход выполнен"
	TitleRegistered     = "Регистрация успешна"
	TitleBalanceUpdated = "Баланс обновлён"
	TitleLoggedOut      = "Выход выполнен"
	TitleSiteReady      = "Сайт готов"
	TitleExported       = "Файл сохранён"
	TitlePublished      = "Сайт опубликован"

	MsgGoodbye       = "До скорой встречи!"
	MsgEmptyPrompt   = "Опишите сайт, который хотите создать"
	MsgCredentials   = "Введите email и пароль"
	MsgNoSession     = "Сначала войдите в аккаунт"
	MsgNotConfigured = "Адрес сервиса не настроен"
)
