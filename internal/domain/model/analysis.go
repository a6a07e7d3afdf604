package model

// AIが返す候補の病名
type PossibleCondition struct {
	Name       string `json:"name"`
	Confidence string `json:"confidence"`
}

// 症状分析の結果
type AnalysisResult struct {
	PossibleConditions []PossibleCondition `json:"possible_conditions"`
	Recommendations    string              `json:"recommendations"`
	IsEmergency        bool                `json:"is_emergency"`
}

// AI呼び出し失敗時にユーザーへ返す形
type AnalysisError struct {
	ErrorMsg string `json:"error_msg"`
}
