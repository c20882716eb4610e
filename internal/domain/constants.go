package domain

// Default booking rule values, used until the provider saves their own.
const (
	DefaultBufferMinutes  = 30
	DefaultMinNoticeHours = 2
	DefaultHorizonDays    = 60
)

// Business validation constants
const (
	MinServiceDurationMinutes  = 15
	MaxServiceDurationMinutes  = 240
	ServiceDurationStepMinutes = 15

	MaxWindowsPerDay = 3

	// SlotStrideMinutes: шаг генерации кандидатов
	// Совпадает с шагом редактирования окон доступности: длительности,
	// не кратные 30 минутам, всё равно работают, потому что попадание в окно
	// проверяется по концу кандидата, а не по шагу
	SlotStrideMinutes = 30

	MaxNotesLength = 1000
)

// Rate limiting: per-client-IP fixed window for booking attempts.
const (
	RateLimitMaxAttempts   = 10
	RateLimitWindowSeconds = 3600
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
