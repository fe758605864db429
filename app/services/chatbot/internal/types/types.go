// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type WebchatSendRequest struct {
	UserId string `json:"user_id,optional"`
	Text   string `json:"text"`
}

type WebchatSendResponse struct {
	UserId string `json:"user_id"`
	Reply  string `json:"reply"`
	State  string `json:"state"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type GetOrderRequest struct {
	Id int64 `path:"id"`
}

type OrderItem struct {
	Sku          string `json:"sku"`
	Name         string `json:"name"`
	Qty          int    `json:"qty"`
	UnitPriceClp int64  `json:"unit_price_clp"`
}

type OrderInfo struct {
	Id        int64       `json:"id,string"`
	Channel   string      `json:"channel"`
	UserId    string      `json:"user_id"`
	Status    string      `json:"status"`
	TotalClp  int64       `json:"total_clp"`
	Total     string      `json:"total"`
	Items     []OrderItem `json:"items"`
	CreatedAt string      `json:"created_at"`
}

type ListLeadsRequest struct {
	Limit int64 `form:"limit,default=100"`
}

type LeadInfo struct {
	Id        int64  `json:"id,string"`
	Channel   string `json:"channel"`
	UserId    string `json:"user_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	City      string `json:"city"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
}

type ListLeadsResponse struct {
	Leads []LeadInfo `json:"leads"`
}
