package gemini

// The prompts are the generation-side half of the output contract: they embed
// the exact field names and enum values the parser requires. The parser is
// the enforcement point and never trusts the model's adherence.

// aiDetectionPrompt asks the model to judge whether the photo is
// AI-generated. Schema: isAiGenerated / confidence / reason.
const aiDetectionPrompt = `Analyze this image and determine if it is AI-generated, synthetic, or computer-generated.

Look for signs of:
- Unrealistic textures, patterns, or artifacts typical of AI image generation
- Characteristics of AI art generators (DALL-E, Midjourney, Stable Diffusion, etc.)
- Synthetic or computer-generated food appearance
- Unnatural lighting, shadows, or reflections
- Repetitive patterns or inconsistencies typical of AI generation
- Overly perfect or unrealistic food presentation

Respond with ONLY a JSON object:
{
    "isAiGenerated": true or false,
    "confidence": <0.0 to 1.0>,
    "reason": "brief explanation if AI-generated"
}

If the image appears to be a real photograph of food, set isAiGenerated to false.
If the image appears to be AI-generated, synthetic, or fake, set isAiGenerated to true.

Respond ONLY with valid JSON, no additional text.`

// analysisPrompt asks for the full food analysis record. The escape hatch for
// non-food images is the {"error": ...} shape the parser recognizes.
const analysisPrompt = `You are an expert food recognition system. Analyze this food image carefully and provide accurate, specific food identification.

CRITICAL INSTRUCTIONS FOR FOOD NAME IDENTIFICATION:
1. Look at the image VERY CAREFULLY and identify EXACTLY what food items are visible
2. Use the ACTUAL, SPECIFIC name of the food item(s) you see - NEVER use generic terms like "Food Item", "Cooked Meal", "Dish", "Meal", etc.
3. If you see multiple items, combine them descriptively (e.g., "Rice and Dal Curry", "Chappati with Vegetable Curry", "Biryani with Raita")
4. For Indian foods, use the correct regional names:
   - Flatbreads: "Chappati", "Roti", "Naan", "Paratha", "Poori" (identify which one you see)
   - Rice dishes: "Biryani", "Pulao", "Fried Rice", "Plain Rice" (be specific)
   - Curries: "Dal Curry", "Vegetable Curry", "Chicken Curry", "Fish Curry" (specify the type)
   - Snacks: "Samosa", "Pakora", "Dosa", "Idli", "Vada" (use exact names)
   - Others: "Sambar", "Rasam", "Chutney", "Pickle", etc.
5. For international foods, use standard names: "Pizza", "Burger", "Pasta", "Salad", "Soup", etc.
6. If you cannot identify the specific food, describe what you see: "Yellow Curry with Rice", "Fried Flatbread", "Steamed Rice Cakes"
7. NEVER use placeholder names - always use what you actually observe in the image

PRODUCT TYPE DETECTION:
- "cooked": Freshly prepared food, not commercially packaged (e.g., home-cooked meals, restaurant food in containers, freshly made items)
- "packed": Commercially packaged products with labels, barcodes, or sealed packaging (e.g., packaged snacks, bottled beverages, canned goods, sealed food packages)

EXPIRY DATE DETECTION (for packed products only):
- If productType is "packed", carefully examine the package for expiry date, best before date, or use by date
- If you can clearly read the expiry date, return it as ISO date string (YYYY-MM-DD format)
- If expiry date is not visible or unclear, set expiryDateFromPackage to null

VALIDATION RULES:
- If the image contains ANY NON-FOOD items (cleaning products, medicines, electronics, etc.), respond with: {"error": "This image does not contain food items. Please upload an image of food only."}
- ONLY proceed with analysis if the image contains FOOD items

Return a JSON object with this EXACT structure:
{
    "foodCategory": "Cooked Meals" | "Raw Food" | "Beverages" | "Snacks" | "Desserts",
    "itemName": "EXACT SPECIFIC FOOD NAME - Use the real name of what you see, e.g., 'Chappati', 'Rice and Dal Curry', 'Vegetable Biryani', 'Dosa with Sambar'",
    "quantity": <number of servings/plates/items you can count>,
    "qualityScore": <0.0 to 1.0 - assess visual quality>,
    "freshness": "Fresh" | "Good" | "Fair",
    "storageRecommendation": "Hot" | "Cold" | "Dry",
    "confidence": <0.0 to 1.0 - your confidence in the identification>,
    "detectedItems": ["specific", "food", "items", "you", "can", "see"],
    "productType": "cooked" | "packed",
    "expiryDateFromPackage": <ISO date string or null - only if productType is "packed" and you can clearly read it from the package label>
}

Remember: itemName MUST be the specific, actual name of the food you see. Look carefully at the image and identify the exact food item(s).

Respond ONLY with valid JSON, no additional text or explanations.`
