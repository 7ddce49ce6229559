package commentary

// Bucket identifies one of the four canonical commentary sets.
type Bucket string

const (
	BucketTanach        Bucket = "tanach"
	BucketTalmud        Bucket = "talmud"
	BucketRambam        Bucket = "rambam"
	BucketShulchanAruch Bucket = "shulchan_aruch"
)

// bucketPriority orders the keyword scan: the narrower codification works win
// over the broad general-Torah bucket when a text mentions both.
var bucketPriority = []Bucket{BucketRambam, BucketShulchanAruch, BucketTalmud, BucketTanach}

// commentators holds each bucket's fixed commentator list. Order matters: the
// selector always returns the first two entries, never shuffled.
var commentators = map[Bucket][]string{
	BucketTanach:        {"Rashi", "Ibn Ezra", "Ramban", "Sforno", "Or HaChaim"},
	BucketTalmud:        {"Rashi", "Tosafot", "Maharsha", "Ritva", "Rashba"},
	BucketRambam:        {"Kesef Mishneh", "Maggid Mishneh", "Lechem Mishneh", "Radbaz"},
	BucketShulchanAruch: {"Mishnah Berurah", "Shach", "Taz", "Magen Avraham"},
}

// keywords maps buckets to the hand-maintained identifier lists scanned
// against title+range+excerpt. All entries are lowercase.
var keywords = map[Bucket][]string{
	BucketTanach: {
		"genesis", "exodus", "leviticus", "numbers", "deuteronomy",
		"bereshit", "bereishit", "shemot", "vayikra", "bamidbar", "devarim",
		"joshua", "judges", "samuel", "kings", "isaiah", "jeremiah", "ezekiel",
		"hosea", "joel", "amos", "jonah", "micah", "habakkuk", "zechariah", "malachi",
		"psalms", "tehillim", "proverbs", "mishlei", "job", "iyov",
		"song of songs", "shir hashirim", "ruth", "lamentations", "eicha",
		"ecclesiastes", "kohelet", "esther", "daniel", "ezra", "nehemiah", "chronicles",
		"chumash", "torah portion", "parasha", "parsha", "tanach", "tanakh",
	},
	BucketTalmud: {
		"berakhot", "berachot", "shabbat", "eruvin", "pesachim", "shekalim",
		"yoma", "sukkah", "beitzah", "rosh hashanah", "taanit", "megillah",
		"moed katan", "chagigah", "yevamot", "ketubot", "nedarim", "nazir",
		"sotah", "gittin", "kiddushin", "bava kamma", "bava metzia", "bava batra",
		"sanhedrin", "makkot", "shevuot", "avodah zarah", "horayot",
		"zevachim", "menachot", "chullin", "bekhorot", "arakhin", "temurah",
		"keritot", "meilah", "niddah", "talmud", "gemara", "mishnah", "pirkei avot",
	},
	BucketRambam: {
		"rambam", "maimonides", "mishneh torah", "hilchot", "hilkhot",
		"sefer hamitzvot", "moreh nevuchim", "guide for the perplexed",
		"yad hachazakah",
	},
	BucketShulchanAruch: {
		"shulchan aruch", "shulchan arukh", "orach chaim", "orach chayim",
		"yoreh deah", "even haezer", "even ha'ezer", "choshen mishpat",
		"kitzur", "rema", "aruch hashulchan",
	},
}
