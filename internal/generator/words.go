package generator

// passphraseWords is the dictionary for passphrase generation. Common short
// English words: easy to type, easy to remember.
var passphraseWords = []string{
	"able", "about", "above", "accept", "action", "active", "actual", "advance", "advice",
	"afraid", "after", "again", "against", "agency", "agent", "agree", "ahead", "allow",
	"almost", "alone", "along", "already", "always", "amount", "ancient", "angle", "angry",
	"animal", "annual", "another", "answer", "anyone", "apart", "appear", "apple", "apply",
	"approve", "april", "area", "argue", "arise", "around", "arrive", "artist", "aside",
	"assault", "asset", "assist", "assume", "attack", "attempt", "attend", "attract", "author",
	"autumn", "avenue", "avoid", "awake", "award", "aware", "balance", "barrel", "barrier",
	"battle", "beach", "beauty", "become", "before", "begin", "behalf", "behave", "behind",
	"belief", "belong", "below", "benefit", "beside", "better", "between", "beyond", "blame",
	"branch", "brave", "bread", "break", "bridge", "brief", "bright", "bring", "broken",
	"brother", "brown", "budget", "build", "burden", "button", "camera", "cancel", "cancer",
	"cannot", "canvas", "capable", "capital", "carbon", "career", "careful", "carpet", "carry",
	"castle", "casual", "catch", "cause", "ceiling", "center", "central", "century", "certain",
	"chair", "challenge", "chance", "change", "channel", "chapter", "charge", "chart", "chase",
	"cheap", "check", "chemical", "chest", "chicken", "chief", "child", "choice", "choose",
	"church", "circle", "citizen", "civil", "claim", "class", "classic", "clean", "clear",
	"client", "climate", "climb", "clock", "close", "cloud", "coach", "coast",
}
