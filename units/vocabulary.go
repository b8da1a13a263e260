package units

// Category физическая категория измеряемой величины
type Category string

const (
	CategoryLength  Category = "length"
	CategoryWeight  Category = "weight"
	CategoryVoltage Category = "voltage"
	CategoryVolume  Category = "volume"
	CategoryWattage Category = "wattage"
)

// Direction направление выбора значения среди кандидатов одной категории
type Direction int

const (
	// TakeMaximum выбрать максимальное значение в базовой шкале
	TakeMaximum Direction = iota
	// TakeMinimum выбрать минимальное значение в базовой шкале
	TakeMinimum
)

// SelectionRule правило выбора значения для типа сущности
type SelectionRule struct {
	Category  Category
	Direction Direction
}

// unitEntry каноническая единица измерения и её поверхностные формы.
// Порядок объявления фиксирован: он определяет порядок перебора словаря
// при нечётком сопоставлении (правило разрешения ничьих).
type unitEntry struct {
	Canonical string
	Forms     []string
}

// vocabulary словарь единиц: каноническое имя -> принимаемые формы
// (аббревиатуры, множественное число, символы, частые OCR-варианты).
// Каноническое имя само является допустимой формой своей единицы.
var vocabulary = []unitEntry{
	{"centimetre", []string{"cm", "centimeter", "centimetres", "centimeters"}},
	{"millimetre", []string{"mm", "millimeter", "millimetres", "millimeters"}},
	{"metre", []string{"m", "meter", "meters", "metres"}},
	{"inch", []string{"in", "inches", "\""}},
	{"foot", []string{"ft", "feet", "'"}},
	{"yard", []string{"yd", "yards"}},
	{"gram", []string{"g", "gm", "gms", "grams"}},
	{"kilogram", []string{"kg", "kgs", "kilograms"}},
	{"milligram", []string{"mg", "mgs", "milligrams"}},
	{"microgram", []string{"mcg", "μg", "micrograms"}},
	{"ounce", []string{"oz", "ounces"}},
	{"pound", []string{"lb", "lbs", "pounds"}},
	{"ton", []string{"t", "tonne", "tonnes", "tons"}},
	{"volt", []string{"v", "volts"}},
	{"kilovolt", []string{"kv", "kilovolts"}},
	{"millivolt", []string{"mv", "millivolts"}},
	{"watt", []string{"w", "watts"}},
	{"kilowatt", []string{"kw", "kilowatts"}},
	{"litre", []string{"l", "liters", "litres"}},
	{"millilitre", []string{"ml", "milliliters", "millilitres", "mls"}},
	{"centilitre", []string{"cl", "centiliters", "centilitres"}},
	{"decilitre", []string{"dl", "deciliters", "decilitres"}},
	{"cubic foot", []string{"cu ft", "ft³"}},
	{"cubic inch", []string{"cu in", "in³"}},
	{"fluid ounce", []string{"fl oz", "fluid ounces"}},
	{"gallon", []string{"gal", "gallons"}},
	{"imperial gallon", []string{"imp gal", "imperial gallons"}},
	{"pint", []string{"pt", "pints"}},
	{"quart", []string{"qt", "quarts"}},
	{"microlitre", []string{"ul", "μl", "microlitres", "microliters"}},
	{"cup", []string{"cups"}},
}

// conversionFactors коэффициенты приведения к наименьшей единице категории:
// миллиметр для длины, миллиграмм для веса, милливольт для напряжения,
// миллилитр для объёма, ватт для мощности.
var conversionFactors = map[string]float64{
	"millimetre": 1, "centimetre": 10, "metre": 1000,
	"inch": 25.4, "foot": 304.8, "yard": 914.4,

	"milligram": 1, "gram": 1000, "kilogram": 1000000, "microgram": 0.001,
	"ounce": 28349.5, "pound": 453592, "ton": 1000000000,

	"millivolt": 1, "volt": 1000, "kilovolt": 1000000,

	"millilitre": 1, "litre": 1000, "centilitre": 10, "decilitre": 100,
	"fluid ounce": 29.5735, "gallon": 3785.41, "pint": 473.176, "quart": 946.353,
	"microlitre": 0.001, "cubic inch": 16.3871, "cubic foot": 28316.8,

	"watt": 1, "kilowatt": 1000,
}

// categoryUnits распределение канонических единиц по категориям.
// Объединение категорий не обязано покрывать весь словарь: единицы без
// категории (cup, imperial gallon) законны и отбрасываются при конвертации.
var categoryUnits = map[Category][]string{
	CategoryLength:  {"millimetre", "centimetre", "metre", "inch", "foot", "yard"},
	CategoryWeight:  {"milligram", "gram", "kilogram", "microgram", "ounce", "pound", "ton"},
	CategoryVoltage: {"millivolt", "volt", "kilovolt"},
	CategoryVolume:  {"millilitre", "litre", "centilitre", "decilitre", "fluid ounce", "gallon", "pint", "quart", "microlitre", "cubic inch", "cubic foot"},
	CategoryWattage: {"watt", "kilowatt"},
}

// selectionRules таблица правил выбора: тип сущности -> (категория,
// направление). Политика min/max — доменная эвристика: наибольшее
// показание веса/напряжения/объёма/мощности в шумном OCR-тексте вероятнее
// всего и есть значение этикетки, а наименьшая длина среди соседствующих
// габаритов вероятнее всего ширина. Правило фиксировано как данные.
var selectionRules = map[string]SelectionRule{
	"item_weight":                   {CategoryWeight, TakeMaximum},
	"maximum_weight_recommendation": {CategoryWeight, TakeMaximum},
	"voltage":                       {CategoryVoltage, TakeMaximum},
	"item_volume":                   {CategoryVolume, TakeMaximum},
	"wattage":                       {CategoryWattage, TakeMaximum},
	"width":                         {CategoryLength, TakeMinimum},
	"depth":                         {CategoryLength, TakeMaximum},
	"height":                        {CategoryLength, TakeMaximum},
}

// Categories список категорий в стабильном порядке
var Categories = []Category{
	CategoryLength, CategoryWeight, CategoryVoltage, CategoryVolume, CategoryWattage,
}
