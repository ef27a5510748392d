package arena

const (
	StartPosition = 50.0
	WinThreshold  = 100.0
	LoseThreshold = 0.0

	PushPower      = 4.0 // base force of a correct answer
	StreakBonus    = 0.5 // extra force per consecutive correct answer
	StreakBonusCap = 3.0
	MaxMomentum    = 2.5
	DecayRate      = 0.1 // friction applied to momentum every tick
)
