package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64 // ID бронирования
}

// Response модель ответа на отмену бронирования
type Response struct {
	BookingID int64  // ID бронирования
	Status    string // Итоговый статус
	// AlreadyCancelled истинно при повторной отмене: успех без побочных эффектов
	AlreadyCancelled bool
}
