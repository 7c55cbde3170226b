package models

// PrestigeTier pairs a duels prestige name with the cumulative wins needed
// to reach it.
type PrestigeTier struct {
	Name string
	Wins int
}

// prestiges is the Hypixel duels prestige ladder, ascending.
var prestiges = []PrestigeTier{
	{"Rookie", 50},
	{"Rookie II", 60},
	{"Rookie III", 70},
	{"Rookie IV", 80},
	{"Rookie V", 90},
	{"Iron", 100},
	{"Iron II", 130},
	{"Iron III", 160},
	{"Iron IV", 190},
	{"Iron V", 220},
	{"Gold", 250},
	{"Gold II", 300},
	{"Gold III", 350},
	{"Gold IV", 400},
	{"Gold V", 450},
	{"Diamond", 500},
	{"Diamond II", 600},
	{"Diamond III", 700},
	{"Diamond IV", 800},
	{"Diamond V", 900},
	{"Master", 1000},
	{"Master II", 1200},
	{"Master III", 1400},
	{"Master IV", 1600},
	{"Master V", 1800},
	{"Legend", 2000},
	{"Legend II", 2600},
	{"Legend III", 3200},
	{"Legend IV", 3800},
	{"Legend V", 4400},
	{"Grandmaster", 5000},
	{"Grandmaster II", 6000},
	{"Grandmaster III", 7000},
	{"Grandmaster IV", 8000},
	{"Grandmaster V", 9000},
	{"Godlike", 10000},
	{"Godlike II", 12000},
	{"Godlike III", 14000},
	{"Godlike IV", 16000},
	{"Godlike V", 18000},
	{"Celestial", 25000},
	{"Celestial II", 30000},
	{"Celestial III", 35000},
	{"Celestial IV", 40000},
	{"Celestial V", 45000},
	{"Divine", 50000},
	{"Divine II", 60000},
	{"Divine III", 70000},
	{"Divine IV", 80000},
	{"Divine V", 90000},
	{"Ascended", 100000},
}

// threshold applies the per-mode wins scaling. Some modes (bridge,
// parkour) halve the required wins.
func threshold(wins int, halved bool) int {
	if halved {
		return wins / 2
	}
	return wins
}

// GetPrestige returns the highest prestige earned with the given wins, or
// "N/A" below the first tier.
func GetPrestige(wins int, halved bool) string {
	last := "N/A"
	for _, tier := range prestiges {
		if wins < threshold(tier.Wins, halved) {
			break
		}
		last = tier.Name
	}
	return last
}

// NextPrestige returns the next unearned prestige and how many more wins
// it needs. At the top of the ladder it returns ("MAX PRESTIGE", 0).
func NextPrestige(wins int, halved bool) (string, int) {
	for _, tier := range prestiges {
		needed := threshold(tier.Wins, halved)
		if needed > wins {
			return tier.Name, needed - wins
		}
	}
	return "MAX PRESTIGE", 0
}
