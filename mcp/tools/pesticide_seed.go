package tools

// PesticideSeedDefinition describes the agricultural reference tool.
func PesticideSeedDefinition() Definition {
	return Definition{
		Name:        PesticideSeedInfoName,
		Description: "Get information about pesticides and seeds for agricultural purposes. Use this when users ask about farming, agriculture, pesticides, seeds, crops, or planting.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What the user wants to know about (e.g., 'organic pesticides', 'wheat seeds', 'tomato farming')",
					"default":     "general information",
				},
			},
			"required": []string{},
		},
	}
}

// PesticideSeedHandler returns the handler for the reference tool. It makes
// no outbound calls and cannot fail; the query is echoed into the report
// header verbatim.
func PesticideSeedHandler() Handler {
	return func(args map[string]any) ([]ContentPart, error) {
		query := stringArg(args, "query", "general information")
		return Text(pesticideSeedReport(query)), nil
	}
}

func pesticideSeedReport(query string) string {
	return pesticideSeedBanner + "Query: " + query + "\n\n" + pesticideSeedBody
}

const pesticideSeedBanner = `🌾 Welcome to Pesticide and Seed Information Service! 🌱
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

`

// pesticideSeedBody is the curated citrus reference document served beneath
// the query header. Keep the text as-is: downstream consumers match on it.
const pesticideSeedBody = `I will fetch comprehensive information about seeds and pesticides for you!

📋 Services Available:
  • Seed recommendations for different crops
  • Organic and chemical pesticide information
  • Seasonal planting guides
  • Pest identification and treatment
  • Fertilizer recommendations
  • Crop rotation strategies

🔜 Coming Soon:
  - Real-time pest alerts
  - Seed supplier database
  - Pesticide safety guidelines
  - Crop yield predictions

💡 Tip: Ask me about specific crops, pests, or farming techniques!Pesticide Practices for Citrus Cultivation in India
Focus Crop: Mosambi (Sweet Lemon)
1. Introduction: Importance of Pest Management in Citrus

Citrus crops such as Mosambi (Sweet Lemon) are economically important fruit crops cultivated widely across India, especially in Maharashtra, Telangana, Andhra Pradesh, Madhya Pradesh, and parts of North India. These crops are high-value, long-duration perennial plants, meaning that pest and disease pressure accumulates over multiple seasons if not managed properly.

Pests in citrus affect:

Leaf health (photosynthesis)

Flowering and fruit set

Fruit quality and size

Tree longevity and yield consistency

Because citrus orchards remain productive for 15–25 years, improper pesticide use can lead to:

Pest resistance

Soil and water contamination

Loss of beneficial insects

Higher long-term costs for farmers

Hence, scientific, need-based pesticide application is critical.

2. Major Insect Pests in Mosambi and Commonly Used Pesticides
2.1 Citrus Psylla (Diaphorina citri)

Nature of Damage

Sucks sap from tender leaves and shoots

Causes leaf curling and stunted growth

Major vector of Citrus Greening (HLB) disease

Season of Occurrence

Peak during new flush (Feb–March, July–September)

Commonly Used Pesticides

Imidacloprid 17.8% SL (soil drenching or foliar spray)

Thiamethoxam 25% WG

Acetamiprid 20% SP

Application Notes

Avoid spraying during flowering

Prefer soil drenching to reduce impact on pollinators

Rotate molecules to prevent resistance

2.2 Citrus Leaf Miner

Nature of Damage

Larvae create zig-zag tunnels in young leaves

Severely affects nursery plants and young orchards

Increases susceptibility to citrus canker

Season of Occurrence

High during monsoon and post-monsoon flush

Commonly Used Pesticides

Abamectin 1.9% EC

Spinosad 45% SC

Emamectin benzoate 5% SG

Integrated Practice

Spray only during active leaf flush

Avoid repeated spraying on mature leaves

2.3 Aphids

Nature of Damage

Sap sucking leads to leaf distortion

Produces honeydew, encouraging sooty mold

Transmits viral diseases

Commonly Used Pesticides

Dimethoate 30% EC

Imidacloprid 17.8% SL

Flonicamid 50% WG

Precautions

Monitor colonies before spraying

Avoid overuse of organophosphates

2.4 Mealybugs

Nature of Damage

Attacks shoots, leaves, fruits, and roots

Causes fruit drop and plant weakening

Severe infestation can kill young trees

Commonly Used Pesticides

Chlorpyrifos 20% EC (restricted use, soil application)

Buprofezin 25% SC

Spirotetramat 15.31% OD

Additional Measures

Use sticky bands on trunks

Control ants that spread mealybugs

2.5 Red Spider Mites

Nature of Damage

Yellow speckling on leaves

Leaf bronzing and premature leaf fall

Reduced fruit size and juice content

Commonly Used Acaricides

Propargite 57% EC

Fenazaquin 10% EC

Hexythiazox 5% EC

Best Practice

Spray early during infestation

Ensure proper spray coverage on leaf undersides

3. Major Diseases and Fungicide Usage in Citrus
3.1 Citrus Canker (Bacterial Disease)

Symptoms

Raised corky lesions on leaves, stems, and fruits

Fruit drop and market rejection

Common Chemicals Used

Copper oxychloride 50% WP

Streptocycline (with copper fungicide)

Bordeaux mixture (1%)

Management Strategy

Avoid spraying antibiotics repeatedly

Focus on sanitation and pruning

3.2 Phytophthora (Root Rot, Gummosis)

Symptoms

Gum oozing from trunk

Root decay and wilting

Sudden plant death in severe cases

Common Fungicides

Metalaxyl + Mancozeb

Fosetyl-Al

Copper-based fungicides (soil drench)

Preventive Measures

Proper drainage

Avoid water stagnation near trunk

3.3 Powdery Mildew

Symptoms

White powdery growth on leaves and flowers

Reduced fruit set

Common Fungicides

Sulphur 80% WP

Hexaconazole 5% EC

Penconazole
4. Safe Pesticide Application Practices for Farmers
4.1 Dosage and Timing

Always follow label-recommended dose

Spray during early morning or late evening

Avoid spraying during strong winds or rain

4.2 Spraying Equipment

Use cone nozzle for uniform coverage

Calibrate sprayers regularly

Separate sprayers for herbicides and insecticides

4.3 Pre-Harvest Interval (PHI)

Respect PHI to avoid pesticide residues

Important for export-quality fruits

5. Resistance Management and Pesticide Rotation

Overuse of the same pesticide leads to resistance development, making future control difficult.

Best Practices

Rotate pesticides with different modes of action

Avoid more than 2 consecutive sprays of the same chemical group

Combine chemical control with biological methods

6. Role of Integrated Pest Management (IPM)

Chemical pesticides should be part of a broader IPM strategy, including:

Regular orchard monitoring

Use of pheromone traps

Conservation of beneficial insects (ladybird beetles, lacewings)

Neem-based products (Azadirachtin)

IPM reduces:

Input costs

Environmental damage

Health risks to farmers

7. Regulatory and Environmental Considerations

Several pesticides are restricted or banned if misused

Excessive residues can lead to rejection in domestic and export markets

Farmers should stay updated via:

State agriculture departments

Krishi Vigyan Kendras (KVKs)

Authorized agri-input dealers

8. Conclusion

Pesticide use in Mosambi cultivation must be scientific, minimal, and need-based. While pesticides play a vital role in protecting citrus crops from pests and diseases, indiscriminate spraying harms both productivity and sustainability.

A well-informed farmer who:

Identifies pests correctly

Applies the right chemical at the right time

Integrates non-chemical practices

will achieve higher yields, better fruit quality, and long-term orchard health.
`
