package dto

type FraudCheckRequest struct {
	ExpenseID string `json:"expense_id" validate:"required,uuid4"`
	FileURL   string `json:"file_url" validate:"required"`
}

type FraudCheckResponse struct {
	FraudCheckID        string                 `json:"fraud_check_id"`
	OverallRiskScore    float64                `json:"overall_risk_score"`
	FraudProbability    float64                `json:"fraud_probability"`
	RiskFactors         []string               `json:"risk_factors"`
	VerificationResults map[string]interface{} `json:"verification_results"`
	ImageAnalysis       map[string]interface{} `json:"image_analysis_results"`
	OnlineVerification  map[string]interface{} `json:"online_verification_results"`
	Summary             string                 `json:"summary"`
}
