package card

const CardUnknown Card = 0

const (
	CardTempura Card = iota + 1
	CardSashimi
	CardDumpling
	CardMakiRoll1
	CardMakiRoll2
	CardMakiRoll3
	CardEggNigiri
	CardSalmonNigiri
	CardSquidNigiri
	CardPudding
	CardWasabi
	CardChopsticks
)

var cardNames = map[Card]string{
	CardTempura:      "Tempura",
	CardSashimi:      "Sashimi",
	CardDumpling:     "Dumpling",
	CardMakiRoll1:    "Maki Roll (1)",
	CardMakiRoll2:    "Maki Roll (2)",
	CardMakiRoll3:    "Maki Roll (3)",
	CardEggNigiri:    "Egg Nigiri",
	CardSalmonNigiri: "Salmon Nigiri",
	CardSquidNigiri:  "Squid Nigiri",
	CardPudding:      "Pudding",
	CardWasabi:       "Wasabi",
	CardChopsticks:   "Chopsticks",
}

var cardsByName = func() map[string]Card {
	m := make(map[string]Card, len(cardNames))
	for c, name := range cardNames {
		m[name] = c
	}
	return m
}()
