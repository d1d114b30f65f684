package game

// wordList is the pool the innocents' shared clue is drawn from.
var wordList = []string{
	"playa", "guitarra", "biblioteca", "helado", "montaña",
	"pizzería", "aeropuerto", "circo", "piscina", "castillo",
	"submarino", "desierto", "estadio", "farmacia", "volcán",
	"pirata", "astronauta", "bombero", "vampiro", "payaso",
	"dentista", "espía", "fantasma", "sirena", "robot",
	"paraguas", "telescopio", "brújula", "linterna", "semáforo",
	"ajedrez", "karaoke", "campamento", "maratón", "orquesta",
	"museo", "panadería", "peluquería", "gasolinera", "hospital",
	"elefante", "pingüino", "tiburón", "dinosaurio", "murciélago",
	"tren", "globo", "cohete", "velero", "helicóptero",
}
