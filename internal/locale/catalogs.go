package locale

var english = Locale{
	Code:       "en",
	StageLabel: "Stage",
	Stages: [4]StageText{
		{
			Name:   "Intake",
			Short:  "Draws in the mixture.",
			Piston: "Moves down from top to bottom.",
			Valves: "Intake open, exhaust closed.",
			Crank:  "Turns from 0° to 180°.",
			Effect: "The engine draws in the air and fuel mixture.",
		},
		{
			Name:   "Compression",
			Short:  "Compresses the mixture.",
			Piston: "Moves up from bottom to top.",
			Valves: "Both closed.",
			Crank:  "Turns from 180° to 360°.",
			Effect: "The mixture is compressed for combustion.",
		},
		{
			Name:   "Combustion",
			Short:  "Ignites and makes power.",
			Piston: "Moves down from top to bottom.",
			Valves: "Both closed.",
			Crank:  "Turns from 360° to 540°.",
			Effect: "The mixture ignites, producing force.",
		},
		{
			Name:   "Exhaust",
			Short:  "Pushes out the gases.",
			Piston: "Moves up from bottom to top.",
			Valves: "Intake closed, exhaust open.",
			Crank:  "Turns from 540° to 720°.",
			Effect: "The burnt gases are expelled.",
		},
	},
	Facts: FactLabels{
		Piston: "Piston",
		Valves: "Valves",
		Crank:  "Crankshaft",
		Effect: "What happens",
	},
	Legend: LegendText{
		Piston:  "Piston",
		Intake:  "Intake",
		Exhaust: "Exhaust",
		Crank:   "Crankshaft",
		Down:    "Down",
		Up:      "Up",
		Open:    "Open",
		Closed:  "Closed",
	},
	Quiz: QuizText{
		Question:    "In which stage is the exhaust valve open? (1-4)",
		Placeholder: "1-4",
		Correct:     "Correct! The exhaust valve is open during the Exhaust stage.",
		Incorrect:   "Incorrect. The exhaust valve is open during Exhaust. Try again!",
	},
	Help:    "s start · p pause · space toggle · r reset · tab quiz · q quit",
	Paused:  "paused",
	Running: "running",
}

var portuguese = Locale{
	Code:       "pt",
	StageLabel: "Etapa",
	Stages: [4]StageText{
		{
			Name:   "Admissão",
			Short:  "Aspira a mistura.",
			Piston: "Desce do topo ao fundo.",
			Valves: "Admissão aberta, escape fechada.",
			Crank:  "Gira de 0° a 180°.",
			Effect: "O motor aspira a mistura de ar e combustível.",
		},
		{
			Name:   "Compressão",
			Short:  "Comprime a mistura.",
			Piston: "Sobe do fundo ao topo.",
			Valves: "Ambas fechadas.",
			Crank:  "Gira de 180° a 360°.",
			Effect: "A mistura é comprimida para a combustão.",
		},
		{
			Name:   "Combustão",
			Short:  "Explode e gera força.",
			Piston: "Desce do topo ao fundo.",
			Valves: "Ambas fechadas.",
			Crank:  "Gira de 360° a 540°.",
			Effect: "A mistura explode, gerando força.",
		},
		{
			Name:   "Exausto",
			Short:  "Expulsa os gases.",
			Piston: "Sobe do fundo ao topo.",
			Valves: "Admissão fechada, escape aberta.",
			Crank:  "Gira de 540° a 720°.",
			Effect: "Os gases queimados são expelidos.",
		},
	},
	Facts: FactLabels{
		Piston: "Pistão",
		Valves: "Válvulas",
		Crank:  "Virabrequim",
		Effect: "O que acontece",
	},
	Legend: LegendText{
		Piston:  "Pistão",
		Intake:  "Admissão",
		Exhaust: "Escape",
		Crank:   "Virabrequim",
		Down:    "Desce",
		Up:      "Sobe",
		Open:    "Aberta",
		Closed:  "Fechada",
	},
	Quiz: QuizText{
		Question:    "Em qual etapa a válvula de escape está aberta? (1-4)",
		Placeholder: "1-4",
		Correct:     "Correto! A válvula de escape está aberta na etapa de Exausto.",
		Incorrect:   "Incorreto. A válvula de escape está aberta no Exausto. Tente novamente!",
	},
	Help:    "s iniciar · p pausar · espaço alternar · r reiniciar · tab quiz · q sair",
	Paused:  "pausado",
	Running: "rodando",
}
