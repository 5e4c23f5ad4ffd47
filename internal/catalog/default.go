package catalog

import "github.com/bree-jeune/ems-protocols-radio/internal/model"

// Default returns the built-in catalog for the Clark County EMS protocol
// manual: every protocol, procedure, operations policy, and formulary drug
// the manual's table of contents names.
func Default() *Catalog {
	var entries []model.TitleEntry
	add := func(cat model.Category, titles ...string) {
		for _, t := range titles {
			entries = append(entries, model.TitleEntry{Title: t, Category: cat})
		}
	}

	add(model.CategoryAdult,
		"General Adult Assessment",
		"General Adult Trauma Assessment",
		"Abdominal Pain/Flank Pain, Nausea & Vomiting",
		"Allergic Reaction",
		"Altered Mental Status/Syncope",
		"Behavioral Emergencies",
		"Bradycardia",
		"Burns",
		"Cardiac Arrest (Non-Traumatic)",
		"Chest Pain (Non-Traumatic) and Suspected Acute Coronary Syndrome",
		"Childbirth/Labor",
		"Cold Related Illness",
		"Epistaxis",
		"Heat-Related Illness",
		"Hyperkalemia (Suspected)",
		"Obstetrical Emergency",
		"Overdose/Poisoning",
		"Pain Management",
		"Pulmonary Edema/CHF",
		"Respiratory Distress",
		"Seizure",
		"Sepsis",
		"Shock",
		"Smoke Inhalation",
		"STEMI (Suspected)",
		"Stroke (CVA)",
		"Tachycardia/Stable",
		"Tachycardia/Unstable",
		"Ventilation Management",
	)

	add(model.CategoryPediatric,
		"General Pediatric Assessment",
		"General Pediatric Trauma Assessment",
		"Abdominal/Flank Pain, Nausea & Vomiting",
		"Pediatric Allergic Reaction",
		"Pediatric Altered Mental Status",
		"Pediatric Behavioral Emergency",
		"Pediatric Bradycardia",
		"Pediatric Burns",
		"Pediatric Cardiac Arrest (Non-Traumatic)",
		"Pediatric Cold-Related Illness",
		"Pediatric Epistaxis",
		"Pediatric Heat-Related Illness",
		"Neonatal Resuscitation",
		"Pediatric Overdose / Poisoning",
		"Pediatric Pain Management",
		"Pediatric Respiratory Distress",
		"Pediatric Seizure",
		"Pediatric Shock",
		"Pediatric Smoke Inhalation",
		"Pediatric Tachycardia / Stable",
		"Pediatric Tachycardia / Unstable",
		"Pediatric Ventilation Management",
		"Pediatric Patient Destination",
	)

	add(model.CategoryProcedures,
		"Cervical Stabilization",
		"Electrical Therapy/Defibrillation",
		"Electrical Therapy/Synchronized Cardioversion",
		"Electrical Therapy/Transcutaneous Pacing",
		"Endotracheal Intubation",
		"Extraglottic Device",
		"First Response Evaluate/Release",
		"Hemorrhage Control",
		"Medication Administration",
		"Needle Cricothyroidotomy",
		"Needle Thoracostomy",
		"Non-Invasive Positive Pressure Ventilation (NIPPV)",
		"Patient Restraint",
		"Tracheostomy Tube Replacement",
		"Traction Splint",
		"Vagal Maneuvers",
		"Vascular Access",
	)

	add(model.CategoryOperations,
		"Communications",
		"Do Not Resuscitate (DNR/POLST)",
		"Documentation",
		"Hostile Mass Casualty Incident",
		"Inter-Facility Transfer of Patients by Ambulance",
		"Prehospital Death Determination",
		"Public Intoxication/Mental Health Crisis",
		"Quality Improvement Review",
		"Termination of Resuscitation",
		"Transport Destinations",
		"Trauma Field Triage Criteria",
		"Waiting Room Criteria",
	)

	add(model.CategoryFormulary,
		"ACETAMINOPHEN",
		"ACETYLSALICYLIC ACID",
		"ADENOSINE",
		"ALBUTEROL",
		"AMIODARONE",
		"ATROPINE SULFATE",
		"BRONCHODILATOR METERED DOSE INHALER",
		"CALCIUM CHLORIDE",
		"DIAZEPAM",
		"DIPHENHYDRAMINE HYDROCHLORIDE",
		"DROPERIDOL",
		"EPINEPHRINE 1:1000",
		"EPINEPHRINE 1:10,000",
		"EPINEPHRINE 1:100,000",
		"EPINEPHRINE AUTO-INJECTOR",
		"ETOMIDATE",
		"FENTANYL CITRATE",
		"GLUCAGON",
		"GLUCOSE - ORAL GLUCOSE",
		"GLUCOSE - D10",
		"HYDROMORPHONE",
		"HYDROXOCOBALAMIN",
		"IPRATROPIUM BROMIDE",
		"IPRATROPIUM BROMIDE and ALBUTEROL SULFATE",
		"KETAMINE",
		"LEVALBUTEROL",
		"LIDOCAINE",
		"MAGNESIUM SULFATE",
		"METOCLOPRAMIDE",
		"MIDAZOLAM",
		"MORPHINE SULFATE",
		"NALOXONE HYDROCHLORIDE",
		"NITROGLYCERIN",
		"ONDANSETRON HYDROCHLORIDE",
		"OXYMETAZOLINE",
		"PHENYLEPHRINE",
		"PHENYLEPHRINE PUSH DOSE",
		"PROCHLORPERAZINE",
		"SODIUM BICARBONATE",
	)

	return New(entries)
}
