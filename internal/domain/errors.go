package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNoSession        = errors.New("no session")
	ErrEmptyCart        = errors.New("empty cart")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidPrice     = errors.New("invalid unit price")
	ErrInvalidDiscount  = errors.New("invalid discount")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNoCategory       = errors.New("no category selected")
	ErrNoSize           = errors.New("no size selected")
	ErrMissingLogin     = errors.New("missing email or api key")
	ErrVerifyRejected   = errors.New("verification rejected")
	ErrVerifyConnection = errors.New("verification unreachable")
)

var messages = map[error]string{
	ErrEmptyCart:        "請先新增產品到清單",
	ErrInvalidQuantity:  "請輸入有效的數量",
	ErrInvalidPrice:     "單價錯誤，請重新選擇規格",
	ErrInvalidDiscount:  "折扣需介於 0 到 100",
	ErrNoCategory:       "請選擇產品類型",
	ErrNoSize:           "請選擇產品規格",
	ErrMissingLogin:     "請輸入電子郵件",
	ErrVerifyRejected:   "驗證失敗",
	ErrVerifyConnection: "連線失敗，請檢查網路連線",
	ErrNoSession:        "請先登入系統",
}

// Message returns the banner text shown to the salesperson for err.
func Message(err error) string {
	for e, m := range messages {
		if errors.Is(err, e) {
			return m
		}
	}
	return "發生錯誤，請稍後再試"
}
