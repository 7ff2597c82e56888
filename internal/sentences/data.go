package sentences

// DefaultLang is the language served when an unknown code is asked
// for and the bank was built without an explicit fallback.
const DefaultLang = "en"

var builtin = map[string][]string{
	"en": {
		"The quick brown fox jumps over the lazy dog.",
		"Pack my box with five dozen liquor jugs.",
		"How vexingly quick daft zebras jump!",
		"Bright vixens jump; dozy fowl quack.",
		"Sphinx of black quartz, judge my vow.",
		"Two driven jocks help fax my big quiz.",
		"Five quacking zephyrs jolt my wax bed.",
		"The five boxing wizards jump quickly.",
		"Jackdaws love my big sphinx of quartz.",
		"Mr. Jock, TV quiz PhD., bags few lynx.",
		"Waltz, bad nymph, for quick jigs vex.",
		"Glib jocks quiz nymphs to vex dwarf.",
		"When zombies arrive, quickly fax judge Pat.",
		"Grumpy wizards make toxic brew for evil queen.",
		"Few black taxis drive up major roads on quiet hazy nights.",
	},
	"de": {
		"Franz jagt im komplett verwahrlosten Taxi quer durch Bayern.",
		"Victor jagt zwölf Boxkämpfer quer über den großen Sylter Deich.",
		"Der schnelle braune Fuchs springt über den faulen Hund.",
		"Jeder Morgen beginnt mit einer Tasse Kaffee und Ruhe.",
		"Übung macht den Meister, sagt man hierzulande oft.",
		"Die Nacht war kühl, und die Sterne standen klar am Himmel.",
		"Kleine Schritte führen mit Geduld zu großen Zielen.",
		"Der Zug nach Hamburg fährt heute von Gleis neun ab.",
		"Wer langsam tippt, tippt bald genauer und dann schneller.",
		"Im Herbst treiben bunte Blätter über den leeren Platz.",
	},
	"es": {
		"El veloz murciélago hindú comía feliz cardillo y kiwi.",
		"La cigüeña tocaba el saxofón detrás del palenque de paja.",
		"El rápido zorro marrón salta sobre el perro perezoso.",
		"La práctica diaria hace al maestro en cualquier oficio.",
		"José compró en Perú una vieja zampoña de caña.",
		"Cada mañana el mercado huele a pan recién horneado.",
		"Escribe despacio primero y la velocidad llegará sola.",
		"Un buen libro es un amigo que nunca te abandona.",
		"Bajo la luna clara, el mar guardaba su calma de siempre.",
		"El tren cruzó el valle mientras caía la tarde.",
	},
	"fr": {
		"Portez ce vieux whisky au juge blond qui fume.",
		"Allez porter ce vieux whisky au juge blond qui fume la pipe.",
		"Le vif renard brun saute par-dessus le chien paresseux.",
		"Chaque matin, la boulangerie embaume la rue entière.",
		"La pratique patiente vaut mieux que la hâte fébrile.",
		"Un petit pas chaque jour mène loin en une année.",
		"Sous la pluie fine, la ville brillait de mille reflets.",
		"Écrire vite demande d'abord d'écrire juste.",
		"Le train de nuit traverse la plaine en silence.",
		"Il rangea ses cahiers avant de fermer la fenêtre.",
	},
}
