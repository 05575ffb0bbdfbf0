package catalog

import (
	"github.com/neurolab-analysis-server/internal/domain"
)

func numeric(min, max float64, unit string) domain.ReferenceRange {
	return domain.ReferenceRange{Kind: domain.NumericRange, Min: min, Max: max, Unit: unit}
}

func categorical(normal ...string) domain.ReferenceRange {
	return domain.ReferenceRange{Kind: domain.CategoricalRange, NormalValues: normal}
}

func entry(name string, r domain.ReferenceRange) ParameterEntry {
	return ParameterEntry{Name: name, Range: r}
}

// Default returns the built-in reference catalog. Adding a parameter means
// adding one entry here; nothing else changes.
func Default() (*Catalog, error) {
	return New([]Panel{
		{
			Name: "blood",
			Sections: []Section{
				{
					Name: "CBC", Label: "CBC", Group: "CBC",
					Parameters: []ParameterEntry{
						entry("WBC", numeric(4.5, 11.0, "10^9/L")),
						entry("RBC", numeric(4.5, 5.5, "10^12/L")),
						entry("Hemoglobin", numeric(13.5, 17.5, "g/dL")),
						entry("Hematocrit", numeric(41.0, 50.0, "%")),
						entry("Platelets", numeric(150, 450, "10^9/L")),
						entry("MCV", numeric(80, 100, "fL")),
						entry("MCH", numeric(27, 33, "pg")),
						entry("MCHC", numeric(32, 36, "g/dL")),
						entry("RDW", numeric(11.5, 14.5, "%")),
						entry("Neutrophils", numeric(2.0, 7.0, "10^9/L")),
						entry("Lymphocytes", numeric(1.0, 4.0, "10^9/L")),
						entry("Monocytes", numeric(0.2, 0.8, "10^9/L")),
						entry("Eosinophils", numeric(0.0, 0.5, "10^9/L")),
						entry("Basophils", numeric(0.0, 0.2, "10^9/L")),
					},
				},
				{
					Name: "LFT", Label: "LFT", Group: "LFT",
					Parameters: []ParameterEntry{
						entry("ALT", numeric(7, 56, "U/L")),
						entry("AST", numeric(10, 40, "U/L")),
						entry("ALP", numeric(44, 147, "U/L")),
						entry("GGT", numeric(8, 61, "U/L")),
						entry("Total_Bilirubin", numeric(0.1, 1.2, "mg/dL")),
						entry("Direct_Bilirubin", numeric(0.0, 0.3, "mg/dL")),
						entry("Total_Protein", numeric(6.0, 8.3, "g/dL")),
						entry("Albumin", numeric(3.5, 5.0, "g/dL")),
						entry("Globulin", numeric(2.3, 3.5, "g/dL")),
						entry("A/G_Ratio", numeric(1.1, 2.2, "")),
					},
				},
				{
					Name: "KFT", Label: "KFT", Group: "KFT",
					Parameters: []ParameterEntry{
						entry("Urea", numeric(7, 20, "mg/dL")),
						entry("Creatinine", numeric(0.6, 1.2, "mg/dL")),
						entry("eGFR", numeric(90, 120, "mL/min/1.73m²")),
						entry("Uric_Acid", numeric(3.5, 7.2, "mg/dL")),
						entry("Sodium", numeric(135, 145, "mmol/L")),
						entry("Potassium", numeric(3.5, 5.0, "mmol/L")),
						entry("Chloride", numeric(98, 107, "mmol/L")),
						entry("Calcium", numeric(8.5, 10.5, "mg/dL")),
						entry("Phosphorus", numeric(2.5, 4.5, "mg/dL")),
						entry("Magnesium", numeric(1.7, 2.2, "mg/dL")),
					},
				},
				{
					Name: "Lipid", Label: "Lipid", Group: "Lipid",
					Parameters: []ParameterEntry{
						entry("Total_Cholesterol", numeric(125, 200, "mg/dL")),
						entry("HDL", numeric(40, 60, "mg/dL")),
						entry("LDL", numeric(0, 100, "mg/dL")),
						entry("VLDL", numeric(5, 40, "mg/dL")),
						entry("Triglycerides", numeric(0, 150, "mg/dL")),
						entry("Chol/HDL_Ratio", numeric(0, 5, "")),
					},
				},
				{
					Name: "Thyroid", Label: "Thyroid", Group: "Thyroid",
					Parameters: []ParameterEntry{
						entry("TSH", numeric(0.4, 4.0, "mIU/L")),
						entry("T3", numeric(80, 200, "ng/dL")),
						entry("T4", numeric(4.5, 12.0, "µg/dL")),
						entry("Free_T3", numeric(2.3, 4.2, "pg/mL")),
						entry("Free_T4", numeric(0.8, 1.8, "ng/dL")),
					},
				},
				{
					Name: "Diabetes", Label: "Diabetes", Group: "Diabetes",
					Parameters: []ParameterEntry{
						entry("FBS", numeric(70, 100, "mg/dL")),
						entry("RBS", numeric(70, 140, "mg/dL")),
						entry("HbA1c", numeric(4.0, 5.6, "%")),
						entry("Insulin", numeric(2.6, 24.9, "µIU/mL")),
						entry("C_Peptide", numeric(0.8, 3.1, "ng/mL")),
					},
				},
				{
					Name: "Inflammatory", Label: "Inflammatory", Group: "Inflammatory",
					Parameters: []ParameterEntry{
						entry("CRP", numeric(0, 5, "mg/L")),
						entry("ESR", numeric(0, 20, "mm/hr")),
						entry("Ferritin", numeric(30, 400, "ng/mL")),
						entry("D_Dimer", numeric(0, 0.5, "µg/mL")),
						entry("Procalcitonin", numeric(0, 0.1, "ng/mL")),
					},
				},
			},
		},
		{
			Name: "urine",
			Sections: []Section{
				{
					Name: "Routine", Label: "Urine Routine", Group: "Urine",
					Parameters: []ParameterEntry{
						entry("Color", categorical("Yellow", "Straw", "Clear")),
						entry("Appearance", categorical("Clear", "Slightly Hazy")),
						entry("pH", numeric(4.5, 8.0, "")),
						entry("Specific_Gravity", numeric(1.005, 1.030, "")),
						entry("Protein", numeric(0, 20, "mg/dL")),
						entry("Glucose", numeric(0, 15, "mg/dL")),
						entry("Ketones", numeric(0, 5, "mg/dL")),
						entry("Blood", numeric(0, 3, "RBC/HPF")),
						entry("Leukocytes", numeric(0, 5, "WBC/HPF")),
						entry("Nitrites", categorical("Negative")),
						entry("Bacteria", numeric(0, 1000, "bacteria/mL")),
					},
				},
				{
					Name: "Culture", Label: "Urine Culture", Group: "Urine",
					Parameters: []ParameterEntry{
						entry("Bacterial_Count", numeric(0, 1000, "CFU/mL")),
						entry("Sensitivity", categorical("Sensitive", "Resistant")),
					},
				},
			},
		},
		{
			Name: "stool",
			Sections: []Section{
				{
					Name: "Routine", Label: "Stool Routine", Group: "Stool",
					Parameters: []ParameterEntry{
						entry("Color", categorical("Brown", "Dark Brown")),
						entry("Consistency", categorical("Formed", "Soft")),
						entry("pH", numeric(5.5, 7.5, "")),
						entry("Occult_Blood", categorical("Negative")),
						entry("WBC", numeric(0, 2, "WBC/HPF")),
						entry("RBC", numeric(0, 0, "RBC/HPF")),
						entry("Fat", numeric(0, 2, "g/24h")),
						entry("Reducing_Substances", categorical("Negative")),
					},
				},
				{
					Name: "Culture", Label: "Stool Culture", Group: "Stool",
					Parameters: []ParameterEntry{
						entry("Bacterial_Count", numeric(0, 1000, "CFU/g")),
						entry("Parasites", categorical("Negative")),
						entry("Ova", categorical("Negative")),
					},
				},
			},
		},
	})
}
