package advisor

import "github.com/vladislavdragonenkov/fulfillment/internal/domain"

// Prediction — рекомендация ML-сервиса по маршрутизации заказа.
type Prediction struct {
	RiskScore            float64 `json:"riskScore"`
	RecommendedWarehouse string  `json:"recommendedWarehouse"`
	ETA                  string  `json:"eta"`
	Expedite             bool    `json:"expedite"`
}

// Advisor описывает взаимодействие с сервисом предсказаний.
type Advisor interface {
	Predict(order domain.OrderPlaced) Prediction
}

// expediteThreshold — порог количества, после которого заказ ускоряется.
const expediteThreshold = 10

// StubAdvisor возвращает фиксированную рекомендацию; реальная интеграция
// подключается вместо него через интерфейс Advisor.
type StubAdvisor struct{}

// NewStubAdvisor возвращает заглушку ML-сервиса.
func NewStubAdvisor() *StubAdvisor {
	return &StubAdvisor{}
}

// Predict возвращает рекомендацию для заказа.
func (a *StubAdvisor) Predict(order domain.OrderPlaced) Prediction {
	return Prediction{
		RiskScore:            0.12,
		RecommendedWarehouse: "primary",
		ETA:                  "2d",
		Expedite:             order.Quantity > expediteThreshold,
	}
}

var _ Advisor = (*StubAdvisor)(nil)
