package catalog

import "localcart/internal/domain"

func sampleProducts() []domain.Product {
	return []domain.Product{
		// Food
		{
			Name: "Pasta", Price: rwf(3500), Category: domain.Food, ImageName: "food_pasta",
			Description: "Delicious Italian-style pasta made from premium durum wheat.",
			Nutrition: domain.Nutrition{Present: true, Calories: kcal(420), ServingSize: "1 plate (250 g)",
				Ingredients: []string{"Durum wheat", "Tomato", "Basil", "Olive oil", "Garlic"},
				Allergens:   []string{"Gluten"},
				Precautions: []string{"Contains gluten. Not suitable for celiac diet."}},
		},
		{
			Name: "Fruits", Price: rwf(5000), Category: domain.Food, ImageName: "food_fruits",
			Description: "A colorful mix of fresh, seasonal fruits, handpicked for quality.",
			Nutrition: domain.Nutrition{Present: true, Calories: kcal(180), ServingSize: "1 bowl (300 g)",
				Ingredients: []string{"Mango", "Pineapple", "Banana", "Apple"},
				Precautions: []string{"Wash thoroughly before eating."}},
		},
		{
			Name: "Burrito", Price: rwf(6500), Category: domain.Food, ImageName: "food_buritto",
			Description: "Soft tortilla filled with fresh ingredients, perfect for a quick meal.",
			Nutrition: domain.Nutrition{Present: true, Calories: kcal(560), ServingSize: "1 wrap (300 g)",
				Ingredients: []string{"Tortilla", "Beans", "Rice", "Beef", "Cheese"},
				Allergens:   []string{"Gluten", "Dairy"},
				Precautions: []string{"Contains dairy and gluten."}},
		},
		{
			Name: "Fresh Strawberries", Price: rwf(3000), Category: domain.Food, ImageName: "food_strawberries",
			Description: "Juicy and sweet strawberries, freshly harvested from local farms.",
			Nutrition: domain.Nutrition{Present: true, Calories: kcal(48), ServingSize: "1 cup (150 g)",
				Precautions: []string{"Rinse before consumption."}},
		},
		{
			Name: "Chocolate Chip Cookies", Price: rwf(1000), Category: domain.Food, ImageName: "food_chocos",
			Description: "Crispy on the outside, chewy on the inside, loaded with chocolate chips.",
			Nutrition: domain.Nutrition{Present: true, Calories: kcal(220), ServingSize: "2 cookies (50 g)",
				Ingredients: []string{"Wheat flour", "Sugar", "Chocolate chips", "Butter", "Eggs"},
				Allergens:   []string{"Gluten", "Dairy", "Eggs"},
				Precautions: []string{"May contain traces of nuts."}},
		},
		{
			Name: "Beef Stew", Price: rwf(3000), Category: domain.Food, ImageName: "food_beef",
			Description: "Hearty beef stew slow-cooked with fresh vegetables and spices.",
			Nutrition: domain.Nutrition{Present: true, Calories: kcal(480), ServingSize: "1 bowl (300 g)",
				Ingredients: []string{"Beef", "Carrots", "Potatoes", "Onions", "Tomatoes"},
				Precautions: []string{"Contains bones fragments rarely; chew with care."}},
		},

		// Drinks
		{
			Name: "Herbal Tea", Price: rwf(3000), Category: domain.Drinks, ImageName: "drinks_tea",
			Description: "A soothing blend of herbs and natural ingredients.",
			Nutrition: domain.Nutrition{Present: true, Calories: kcal(2), ServingSize: "1 cup (240 ml)",
				Ingredients: []string{"Lemongrass", "Chamomile", "Mint"},
				Precautions: []string{"If pregnant or nursing, consult a doctor before consuming herbal blends."}},
		},
		{
			Name: "Fresh Juice", Price: rwf(3500), Category: domain.Drinks, ImageName: "drinks_juice",
			Description: "Cold-pressed juice made from fresh local fruits.",
			Nutrition: domain.Nutrition{Present: true, Calories: kcal(120), ServingSize: "1 bottle (300 ml)",
				Ingredients: []string{"Orange", "Pineapple", "Passion fruit"},
				Precautions: []string{"Keep refrigerated. Best consumed within 24 hours."}},
		},
		{
			Name: "Coffee Beans", Price: rwf(10000), Category: domain.Drinks, ImageName: "drinks_coffee",
			Description: "Organic, freshly roasted coffee beans for the perfect brew.",
			Nutrition: domain.Nutrition{Present: true,
				Precautions: []string{"High caffeine content. Limit intake during late hours."}},
		},
		{
			Name: "Sparkling Water", Price: rwf(2000), Category: domain.Drinks, ImageName: "drinks_water",
			Description: "Refreshing sparkling water with natural mineral essence.",
			Nutrition: domain.Nutrition{Present: true, Calories: kcal(0), ServingSize: "1 bottle (500 ml)",
				Precautions: []string{"Carbonated beverage may cause bloating in sensitive individuals."}},
		},

		// Beauty & Accessories
		{
			Name: "Handmade Soap", Price: rwf(4000), Category: domain.BeautyAccessories, ImageName: "beauty_soap",
			Description: "All-natural handmade soap with essential oils.",
			Nutrition: domain.Nutrition{Present: true,
				Ingredients: []string{"Shea butter", "Olive oil", "Coconut oil", "Lavender oil"},
				Precautions: []string{"Patch test before first use", "Avoid contact with eyes"}},
			Materials: domain.Materials{Present: true, Materials: []string{"Plant oils"}},
			Care:      domain.Care{Present: true, Instructions: []string{"Keep dry between uses", "Store in a cool place"}},
		},
		{
			Name: "Beaded Necklace", Price: rwf(17000), Category: domain.BeautyAccessories, ImageName: "beauty_necklace",
			Description: "Handcrafted beaded necklace for a stylish look.",
			Materials: domain.Materials{Present: true, Materials: []string{"Glass beads", "Strong nylon thread"},
				Origin: "Made in Rwanda"},
			Care: domain.Care{Present: true, Instructions: []string{"Avoid water exposure", "Store separately to prevent scratches"}},
		},
		{
			Name: "Organic Lip Balm", Price: rwf(3000), Category: domain.BeautyAccessories, ImageName: "beauty_lipbalm",
			Description: "Moisturizing lip balm made from organic ingredients.",
			Nutrition: domain.Nutrition{Present: true,
				Ingredients: []string{"Beeswax", "Shea butter", "Cocoa butter", "Vitamin E"},
				Precautions: []string{"Contains beeswax; not suitable for those with bee product allergies"}},
		},
		{
			Name: "Handmade Earrings", Price: rwf(13500), Category: domain.BeautyAccessories, ImageName: "beauty_earrings",
			Description: "Unique handmade earrings that add elegance to any outfit.",
			Materials:   domain.Materials{Present: true, Materials: []string{"Alloy metal", "Glass"}},
			Care:        domain.Care{Present: true, Instructions: []string{"Wipe with soft cloth", "Avoid perfumes and lotions"}},
		},

		// Interior Designs
		{
			Name: "Decorative Vase", Price: rwf(13000), Category: domain.InteriorDesigns, ImageName: "interior_vase",
			Description: "A beautifully crafted vase to decorate your space.",
			Materials: domain.Materials{Present: true, Materials: []string{"Ceramic"},
				Dimensions: "30 cm (h) x 12 cm (w)", Origin: "Kigali, Rwanda"},
			Care: domain.Care{Present: true, Instructions: []string{"Wipe with a dry cloth"}},
		},
		{
			Name: "Handmade Rugs", Price: rwf(45000), Category: domain.InteriorDesigns, ImageName: "interior_rugs",
			Description: "Locally made rugs with intricate designs and craftsmanship.",
			Materials: domain.Materials{Present: true, Materials: []string{"Wool"},
				Dimensions: "2.0 m x 1.5 m", Origin: "Gisenyi, Rwanda"},
			Care: domain.Care{Present: true, Instructions: []string{"Vacuum weekly", "Spot clean with mild detergent"}},
		},
		{
			Name: "Ceramic Pottery", Price: rwf(20000), Category: domain.InteriorDesigns, ImageName: "interior_pottery",
			Description: "Handmade ceramic pottery with modern designs.",
			Materials:   domain.Materials{Present: true, Materials: []string{"Ceramic"}, Origin: "Huye, Rwanda"},
			Care:        domain.Care{Present: true, Instructions: []string{"Handle with care", "Avoid sudden temperature changes"}},
		},
		{
			Name: "Wall Art", Price: rwf(35000), Category: domain.InteriorDesigns, ImageName: "interior_wallart",
			Description: "Beautiful and unique art to enhance any room.",
			Materials: domain.Materials{Present: true, Materials: []string{"Canvas", "Acrylic paint"},
				Dimensions: "60 cm x 90 cm", Origin: "Kigali, Rwanda"},
			Care: domain.Care{Present: true, Instructions: []string{"Keep away from direct sunlight"}},
		},
	}
}
