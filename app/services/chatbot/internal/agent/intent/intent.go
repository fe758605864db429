package intent

type Intent string

const (
	Greet            Intent = "greet"
	Finalize         Intent = "finalize"
	Handoff          Intent = "handoff"
	NewOrder         Intent = "new_order"
	GoBack           Intent = "go_back"
	AddUnit          Intent = "add_unit"
	SendData         Intent = "send_data"
	ProductInfo      Intent = "product_info"
	ProductPediatric Intent = "product_pediatric"
	ProductPetSmall  Intent = "product_pet_small"
	ProductPetMedium Intent = "product_pet_medium"
	ProductPetLarge  Intent = "product_pet_large"
	ProductAdult     Intent = "product_adult"
	WantPet          Intent = "want_pet"
	WantHuman        Intent = "want_human"
	Shipping         Intent = "shipping"
	FaqPayment       Intent = "faq_payment"
	AskPrice         Intent = "ask_price"
	Buy              Intent = "buy"
	Warranty         Intent = "warranty"
	FaqCleaning      Intent = "faq_cleaning"
	Howto            Intent = "howto"
	FaqCompatibility Intent = "faq_compatibility"
	Sizing           Intent = "sizing"
	ChannelInfo      Intent = "channel_info"
	Unknown          Intent = "unknown"
)

// IsProduct reports intents that name a concrete catalog line.
func (i Intent) IsProduct() bool {
	switch i {
	case ProductPediatric, ProductAdult, ProductPetSmall, ProductPetMedium, ProductPetLarge:
		return true
	}
	return false
}

// IsInformational reports intents answered in place without moving the
// conversation.
func (i Intent) IsInformational() bool {
	switch i {
	case Shipping, FaqPayment, AskPrice, Warranty, FaqCleaning, Howto, FaqCompatibility, ChannelInfo:
		return true
	}
	return false
}
