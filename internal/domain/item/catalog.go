package item

func mk(id, name, emoji string, cat Category, price, tier int, desc string) Item {
	return Item{ID: id, Name: name, Emoji: emoji, Category: cat, Price: price, Tier: tier, Desc: desc, State: StateRaw}
}

func mkState(id, name, emoji string, cat Category, price, tier int, desc string, state State) Item {
	it := mk(id, name, emoji, cat, price, tier, desc)
	it.State = state
	return it
}

// BaseIngredients is the static shop catalog, tier 1 (market basics)
// through tier 5 (cosmic absurdities).
var BaseIngredients = []Item{
	// Tier 1: basics
	mk("water_drop", "Вода", "💧", CategoryLiquid, 0, 1, "H2O"),
	mk("egg", "Яйце", "🥚", CategoryMeat, 10, 1, "Крихке"),
	mk("bread", "Хліб", "🍞", CategoryGrain, 12, 1, "М'який"),
	mk("potato", "Картопля", "🥔", CategoryVeg, 8, 1, "Брудна"),
	mk("tomato", "Помідор", "🍅", CategoryVeg, 10, 1, "Червоний"),
	mk("onion", "Цибуля", "🧅", CategoryVeg, 8, 1, "Слізогінна"),
	mk("carrot", "Морква", "🥕", CategoryVeg, 9, 1, "Хрустка"),
	mk("apple", "Яблуко", "🍎", CategoryFruit, 12, 1, "Солодке"),
	mk("banana", "Банан", "🍌", CategoryFruit, 15, 1, "Калій"),
	mk("salt", "Сіль", "🧂", CategorySpice, 5, 1, "Біла смерть"),
	mk("pepper", "Перець", "⚫", CategorySpice, 6, 1, "Чорний"),
	mk("sugar", "Цукор", "🍬", CategorySpice, 6, 1, "Солодкий"),
	mk("flour", "Борошно", "🥡", CategoryGrain, 10, 1, "Пшеничне"),
	mk("milk", "Молоко", "🥛", CategoryLiquid, 15, 1, "Коров'яче"),
	mk("butter", "Масло", "🧈", CategoryLiquid, 20, 1, "Вершкове"),
	mk("rice", "Рис", "🍚", CategoryGrain, 18, 1, "Басматі"),
	mk("pasta", "Паста", "🍝", CategoryGrain, 20, 1, "Італія"),
	mk("corn", "Кукурудза", "🌽", CategoryVeg, 14, 1, "Солодка"),
	mk("chicken_wing", "Крильце", "🍗", CategoryMeat, 25, 1, "Сире"),
	mk("pork_chop", "Свинина", "🥩", CategoryMeat, 30, 1, "Шматок"),
	mk("sausage", "Сосиска", "🌭", CategoryMeat, 15, 1, "Студентська"),
	mk("cucumber", "Огірок", "🥒", CategoryVeg, 9, 1, "Зелений"),
	mk("beetroot", "Буряк", "🍠", CategoryVeg, 10, 1, "Для борщу"),
	mk("garlic", "Часник", "🧄", CategoryVeg, 12, 1, "Анти-вампір"),
	mk("orange", "Апельсин", "🍊", CategoryFruit, 18, 1, "Цитрус"),
	mk("grape", "Виноград", "🍇", CategoryFruit, 22, 1, "Ізабелла"),

	// Tier 2: supermarket
	mk("cheese", "Сир", "🧀", CategoryMeat, 45, 2, "Чеддер"),
	mk("salmon", "Лосось", "🐟", CategoryMeat, 120, 2, "Свіжа риба"),
	mk("chili", "Чилі", "🌶️", CategorySpice, 40, 2, "Вогонь!"),
	mk("lemon", "Лимон", "🍋", CategoryFruit, 35, 2, "Кислий"),
	mk("mushroom", "Гриб", "🍄", CategoryVeg, 50, 2, "Лісовий"),
	mk("shrimp", "Креветка", "🦐", CategoryMeat, 140, 2, "Морська"),
	mk("honey", "Мед", "🍯", CategoryLiquid, 60, 2, "Бджолиний"),
	mk("chocolate", "Шоколад", "🍫", CategorySpice, 45, 2, "Чорний"),
	mk("coffee", "Кава", "☕", CategorySpice, 55, 2, "Арабіка"),
	mk("bacon", "Бекон", "🥓", CategoryMeat, 70, 2, "Копчений"),
	mk("avocado", "Авокадо", "🥑", CategoryVeg, 85, 2, "Модний"),
	mk("pineapple", "Ананас", "🍍", CategoryFruit, 90, 2, "Тропік"),
	mk("pumpkin", "Гарбуз", "🎃", CategoryVeg, 35, 2, "Геловін"),
	mk("olive_oil", "Олія", "🍾", CategoryLiquid, 75, 2, "Оливкова"),
	mk("wasabi", "Васабі", "🟢", CategorySpice, 50, 2, "Гостре!"),
	mk("vanilla", "Ваніль", "🌼", CategorySpice, 100, 2, "Стручок"),
	mk("strawberry", "Полуниця", "🍓", CategoryFruit, 55, 2, "Літня"),
	mk("baguette", "Багет", "🥖", CategoryGrain, 30, 2, "Французький"),
	mk("croissant", "Круасан", "🥐", CategoryGrain, 40, 2, "Масляний"),

	// Tier 3: gourmet and weird
	mk("lobster", "Лобстер", "🦞", CategoryMeat, 450, 3, "Живий"),
	mk("octopus", "Восьминіг", "🐙", CategoryMeat, 400, 3, "8 ніг"),
	mk("steak_ribeye", "Рібай", "🥩", CategoryMeat, 500, 3, "Преміум"),
	mk("duck", "Качка", "🦆", CategoryMeat, 300, 3, "Пекінська"),
	mk("durian", "Дуріан", "🍈", CategoryFruit, 600, 3, "Смердить"),
	mk("dragon_fruit", "Пітахайя", "🐲", CategoryFruit, 350, 3, "Кактус"),
	mk("wine_red", "Вино", "🍷", CategoryLiquid, 400, 3, "Червоне"),
	mk("whiskey", "Віскі", "🥃", CategoryLiquid, 600, 3, "Витримка"),
	mk("cactus", "Кактус", "🌵", CategoryWeird, 200, 3, "Колючий"),
	mk("scorpion", "Скорпіон", "🦂", CategoryWeird, 400, 3, "Отруйний"),
	mk("snake", "Змія", "🐍", CategoryWeird, 500, 3, "Довга"),
	mk("bone", "Кістка", "🦴", CategoryWeird, 50, 3, "Для бульйону"),
	mk("old_boot", "Черевик", "🥾", CategoryWeird, 10, 3, "Старий"),
	mk("truffle_oil", "Трюфельна олія", "🏺", CategoryLiquid, 800, 3, "Ароматна"),
	mk("quinoa", "Кіноа", "🌾", CategoryGrain, 180, 3, "Суперфуд"),

	// Tier 4: RPG, dungeon and office
	mk("truffle", "Трюфель", "🌑", CategoryVeg, 1200, 4, "Елітний гриб"),
	mk("wagyu", "Вагю", "🥓", CategoryMeat, 2500, 4, "Мармурове"),
	mk("saffron", "Шафран", "🏵️", CategorySpice, 2000, 4, "Червоне золото"),
	mk("caviar", "Ікра", "⚫", CategoryMeat, 1800, 4, "Осетрова"),
	mk("gold_leaf", "Золото", "✨", CategorySpice, 3000, 4, "Їстівне 24К"),
	mk("slime_goo", "Слиз Слайма", "🟢", CategoryDungeon, 800, 4, "Липкий"),
	mk("goblin_ear", "Вухо Гобліна", "👂", CategoryDungeon, 600, 4, "Брудне"),
	mk("dragon_scale", "Луска Дракона", "🛡️", CategoryDungeon, 4000, 4, "Тверда"),
	mk("eyeball", "Око", "👁️", CategoryDungeon, 750, 4, "Стежить"),
	mk("ectoplasm", "Ектоплазма", "👻", CategoryDungeon, 1500, 4, "Примарна"),
	mk("zombie_brain", "Мозок Зомбі", "🧠", CategoryDungeon, 2000, 4, "Несвіжий"),
	mk("mana_potion", "Зілля Мани", "🧪", CategoryMagic, 1500, 4, "Синє"),
	mk("fairy_dust", "Пилок Феї", "✨", CategoryMagic, 2200, 4, "Літає"),
	mk("mandrake", "Мандрагора", "🌱", CategoryMagic, 2500, 4, "Кричить"),
	mk("witch_brew", "Відвар Відьми", "🍵", CategoryMagic, 1800, 4, "Зелений"),
	mk("stapler", "Степлер", "🖇️", CategoryOffice, 150, 4, "Залізний"),
	mk("paper", "Папір", "📄", CategoryOffice, 20, 4, "А4"),
	mk("coffee_mug", "Кружка", "☕", CategoryOffice, 100, 4, "Брудна"),
	mk("laptop", "Ноутбук", "💻", CategoryOffice, 4000, 4, "Гарячий"),
	mk("keyboard", "Клавіатура", "⌨️", CategoryOffice, 800, 4, "Механічна"),
	mk("printer_ink", "Чорнило", "🖨️", CategoryOffice, 3000, 4, "Дорожче за кров"),

	// Tier 5: legendary, cosmic and tech
	mk("phoenix_egg", "Яйце Фенікса", "🔥", CategoryMagic, 15000, 5, "Відроджується"),
	mk("unicorn_horn", "Ріг Єдинорога", "🦄", CategoryMagic, 30000, 5, "Святий"),
	mk("dragon_meat", "М'ясо Дракона", "🥩", CategoryDungeon, 12000, 5, "Легендарне"),
	mk("time_crystal", "Часовий Кристал", "⏳", CategoryMagic, 50000, 5, "Змінює час"),
	mk("floppy_disk", "Дискета", "💾", CategoryTech, 1000, 5, "1.44mb смаку"),
	mk("iphone", "Смартфон", "📱", CategoryTech, 8000, 5, "Яблучний"),
	mk("gpu", "Відеокарта", "📟", CategoryTech, 25000, 5, "RTX On"),
	mk("battery", "Батарейка", "🔋", CategoryTech, 300, 5, "Кислий літій"),
	mk("cpu", "Процесор", "🧠", CategoryTech, 12000, 5, "Багатоядерний"),
	mk("ram", "Оперативка", "🎫", CategoryTech, 4000, 5, "Швидка"),
	mk("meteorite", "Метеорит", "☄️", CategoryCosmic, 6000, 5, "З космосу"),
	mk("moon_rock", "Місячний камінь", "🌑", CategoryCosmic, 9000, 5, "Сирний?"),
	mk("star_fragment", "Уламок Зірки", "✨", CategoryCosmic, 45000, 5, "Гарячий"),
	mk("alien_egg", "Яйце Чужого", "🥚", CategoryCosmic, 12000, 5, "Небезпечне"),
	mk("dark_matter", "Темна матерія", "🌌", CategoryCosmic, 60000, 5, "Загадкова"),
	mk("antimatter", "Антиматерія", "⚛️", CategoryCosmic, 100000, 5, "Вибух всесвіту"),
}

// ProcessedItems are outputs referenced by specific transformation rules
// and failure branches. Not purchasable.
var ProcessedItems = []Item{
	mkState("mess", "Місиво", "💩", CategoryWeird, 0, 1, "Неїстівне", StateWaste),
	mkState("burnt_food", "Вуглина", "⚫", CategoryWeird, 0, 1, "Згоріло", StateBurnt),
	mkState("egg_fried", "Яєчня", "🍳", CategoryMeat, 0, 1, "Глазунья", StateFried),
	mkState("egg_boiled", "Варене яйце", "🥚", CategoryMeat, 0, 1, "Круте", StateBoiled),
	mkState("popcorn", "Попкорн", "🍿", CategoryGrain, 0, 1, "З кукурудзи", StateFried),
	mkState("glass_shards", "Уламки", "💎", CategoryWeird, 0, 1, "Гостро", StateCracked),
	mkState("wet_electronics", "Замкнуло", "⚡", CategoryTech, 0, 1, "Іскрить", StateBoiled),
	mkState("ice_cube", "Лід", "🧊", CategoryLiquid, 0, 1, "Холодний", StateFrozen),
}

// StarterKit lists the tier 1 staples a fresh chef begins with.
var StarterKit = []string{
	"egg", "bread", "potato", "tomato", "onion", "carrot", "apple", "salt",
}

// StarterQuantity is how many of each StarterKit item a new session gets.
const StarterQuantity = 3
