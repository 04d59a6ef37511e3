package experiment

import (
	"github.com/RyanBlaney/sonido-lowpass/algorithms/filters"
)

// DefaultRuns returns the reference experiment set for the four logged
// signals: moving average and IIR settings tuned per signal, then the FIR
// tables. The FIR coefficients were produced with an external design tool
// for the cutoff, transition bandwidth and window named in each run.
func DefaultRuns() []Run {
	runs := []Run{
		{Signal: "sigA.csv", Filter: filters.MovingAverage(25)},
		{Signal: "sigB.csv", Filter: filters.MovingAverage(20)},
		{Signal: "sigC.csv", Filter: filters.MovingAverage(20)},
		{Signal: "sigD.csv", Filter: filters.MovingAverage(20)},

		{Signal: "sigA.csv", Filter: filters.IIR(0.95, 0.05)},
		{Signal: "sigB.csv", Filter: filters.IIR(0.95, 0.05)},
		{Signal: "sigC.csv", Filter: filters.IIR(0.9, 0.1)},
		{Signal: "sigD.csv", Filter: filters.IIR(0.9, 0.1)},
	}

	for _, d := range firDesigns {
		runs = append(runs, Run{
			Signal: d.signal,
			Filter: filters.FIR(d.h),
			Design: &d.design,
		})
	}

	return runs
}

type firDesign struct {
	signal string
	design Design
	h      []float64
}

var firDesigns = []firDesign{
	{
		signal: "sigA.csv",
		design: Design{Cutoff: 1000, Bandwidth: 4000, SampleRate: 10000, Window: "Rectangular"},
		h: []float64{
			0.325843353326760232,
			0.348313293346479480,
			0.325843353326760232,
		},
	},
	{
		signal: "sigA.csv",
		design: Design{Cutoff: 1000, Bandwidth: 1000, SampleRate: 10000, Window: "Rectangular"},
		h: []float64{
			0.000000000000000007,
			0.039899882278863805,
			0.086079154232428276,
			0.129118731348642435,
			0.159599529115455163,
			0.170605406049220421,
			0.159599529115455163,
			0.129118731348642435,
			0.086079154232428276,
			0.039899882278863805,
			0.000000000000000007,
		},
	},
	{
		signal: "sigA.csv",
		design: Design{Cutoff: 2500, Bandwidth: 1000, SampleRate: 10000, Window: "Rectangular"},
		h: []float64{
			0.060530312237274071,
			-0.000000000000000019,
			-0.100883853728790121,
			0.000000000000000019,
			0.302651561186370377,
			0.475403960610291443,
			0.302651561186370377,
			0.000000000000000019,
			-0.100883853728790121,
			-0.000000000000000019,
			0.060530312237274071,
		},
	},
	{
		signal: "sigB.csv",
		design: Design{Cutoff: 330, Bandwidth: 825, SampleRate: 3300, Window: "Hamming"},
		h: []float64{
			-0.002719748296486631,
			0.000000000000000001,
			0.015808536973328534,
			0.059408709991559894,
			0.127068629704169794,
			0.191410109532370587,
			0.218047524190115638,
			0.191410109532370615,
			0.127068629704169822,
			0.059408709991559908,
			0.015808536973328534,
			0.000000000000000001,
			-0.002719748296486631,
		},
	},
	{
		signal: "sigB.csv",
		design: Design{Cutoff: 330, Bandwidth: 330, SampleRate: 3300, Window: "Hamming"},
		h: []float64{
			0.000000000000000001,
			0.001201426375882775,
			0.002784327847982891,
			0.004227316085446900,
			0.003942763412776409,
			-0.000000000000000002,
			-0.008256777292656481,
			-0.018583210130235957,
			-0.025389820435008297,
			-0.021235308698378592,
			0.000000000000000006,
			0.039588112570909842,
			0.091888877020527615,
			0.145099081031584087,
			0.184902878561820999,
			0.199660667298695443,
			0.184902878561820999,
			0.145099081031584087,
			0.091888877020527657,
			0.039588112570909856,
			0.000000000000000006,
			-0.021235308698378599,
			-0.025389820435008315,
			-0.018583210130235967,
			-0.008256777292656481,
			-0.000000000000000002,
			0.003942763412776408,
			0.004227316085446901,
			0.002784327847982890,
			0.001201426375882775,
			0.000000000000000001,
		},
	},
	{
		signal: "sigB.csv",
		design: Design{Cutoff: 825, Bandwidth: 330, SampleRate: 3300, Window: "Hamming"},
		h: []float64{
			-0.001700396903673608,
			0.000000000000000002,
			0.002937331570890679,
			-0.000000000000000003,
			-0.006730091366404412,
			0.000000000000000006,
			0.014093887903991933,
			-0.000000000000000010,
			-0.026785035820053850,
			0.000000000000000013,
			0.049098960593575401,
			-0.000000000000000017,
			-0.096938332776300790,
			0.000000000000000019,
			0.315619563324482266,
			0.500808226946984569,
			0.315619563324482266,
			0.000000000000000019,
			-0.096938332776300817,
			-0.000000000000000017,
			0.049098960593575422,
			0.000000000000000013,
			-0.026785035820053871,
			-0.000000000000000010,
			0.014093887903991936,
			0.000000000000000006,
			-0.006730091366404410,
			-0.000000000000000003,
			0.002937331570890678,
			0.000000000000000002,
			-0.001700396903673608,
		},
	},
	{
		signal: "sigC.csv",
		design: Design{Cutoff: 625, Bandwidth: 250, SampleRate: 2500, Window: "Blackman"},
		h: []float64{
			0.000000000000000000,
			0.000023261921107576,
			0.000061432444651041,
			0.000000000000000000,
			-0.000291447722004781,
			-0.000814396670401605,
			-0.001304722428486792,
			-0.001226359116783539,
			0.000000000000000001,
			0.002546027087308252,
			0.005703125628112526,
			0.007735724529073834,
			0.006376352590531455,
			-0.000000000000000003,
			-0.010922498655864386,
			-0.022853350749001102,
			-0.029476489738831897,
			-0.023569701466005240,
			0.000000000000000006,
			0.041351205028448933,
			0.094174711313959839,
			0.146802637928974300,
			0.185679937824334729,
			0.200009100501753745,
			0.185679937824334729,
			0.146802637928974300,
			0.094174711313959825,
			0.041351205028448947,
			0.000000000000000006,
			-0.023569701466005240,
			-0.029476489738831897,
			-0.022853350749001120,
			-0.010922498655864390,
			-0.000000000000000003,
			0.006376352590531451,
			0.007735724529073836,
			0.005703125628112531,
			0.002546027087308253,
			0.000000000000000001,
			-0.001226359116783541,
			-0.001304722428486792,
			-0.000814396670401606,
			-0.000291447722004781,
			0.000000000000000000,
			0.000061432444651041,
			0.000023261921107576,
			0.000000000000000000,
		},
	},
	{
		signal: "sigC.csv",
		design: Design{Cutoff: 250, Bandwidth: 250, SampleRate: 2500, Window: "Blackman"},
		h: []float64{
			0.000000000000000000,
			0.000023261921107576,
			0.000061432444651041,
			0.000000000000000000,
			-0.000291447722004781,
			-0.000814396670401605,
			-0.001304722428486792,
			-0.001226359116783539,
			0.000000000000000001,
			0.002546027087308252,
			0.005703125628112526,
			0.007735724529073834,
			0.006376352590531455,
			-0.000000000000000003,
			-0.010922498655864386,
			-0.022853350749001102,
			-0.029476489738831897,
			-0.023569701466005240,
			0.000000000000000006,
			0.041351205028448933,
			0.094174711313959839,
			0.146802637928974300,
			0.185679937824334729,
			0.200009100501753745,
			0.185679937824334729,
			0.146802637928974300,
			0.094174711313959825,
			0.041351205028448947,
			0.000000000000000006,
			-0.023569701466005240,
			-0.029476489738831897,
			-0.022853350749001120,
			-0.010922498655864390,
			-0.000000000000000003,
			0.006376352590531451,
			0.007735724529073836,
			0.005703125628112531,
			0.002546027087308253,
			0.000000000000000001,
			-0.001226359116783541,
			-0.001304722428486792,
			-0.000814396670401606,
			-0.000291447722004781,
			0.000000000000000000,
			0.000061432444651041,
			0.000023261921107576,
			0.000000000000000000,
		},
	},
	{
		signal: "sigC.csv",
		design: Design{Cutoff: 250, Bandwidth: 625, SampleRate: 2500, Window: "Blackman"},
		h: []float64{
			0.000000000000000000,
			-0.000452073562033652,
			-0.002297937600926329,
			-0.004234304945305980,
			0.000000000000000002,
			0.021089216963617326,
			0.066404416488449372,
			0.129158815530706156,
			0.185878795133768981,
			0.208906143983448089,
			0.185878795133768981,
			0.129158815530706211,
			0.066404416488449400,
			0.021089216963617326,
			0.000000000000000002,
			-0.004234304945305989,
			-0.002297937600926331,
			-0.000452073562033653,
			0.000000000000000000,
		},
	},
	{
		signal: "sigD.csv",
		design: Design{Cutoff: 40, Bandwidth: 100, SampleRate: 400, Window: "Kaiser"},
		h: []float64{
			0.000000000000000001,
			0.017202553324110307,
			0.061713642877670657,
			0.127181981478889067,
			0.187685579449425460,
			0.212432485739809079,
			0.187685579449425460,
			0.127181981478889150,
			0.061713642877670623,
			0.017202553324110307,
			0.000000000000000001,
		},
	},
	{
		signal: "sigD.csv",
		design: Design{Cutoff: 40, Bandwidth: 40, SampleRate: 400, Window: "Kaiser"},
		h: []float64{
			0.000000000000000001,
			0.017202553324110307,
			0.061713642877670657,
			0.127181981478889067,
			0.187685579449425460,
			0.212432485739809079,
			0.187685579449425460,
			0.127181981478889150,
			0.061713642877670623,
			0.017202553324110307,
			0.000000000000000001,
		},
	},
	{
		signal: "sigD.csv",
		design: Design{Cutoff: 100, Bandwidth: 40, SampleRate: 400, Window: "Kaiser"},
		h: []float64{
			-0.000000000000000003,
			-0.006516192064016200,
			0.000000000000000006,
			0.014280311428581572,
			-0.000000000000000010,
			-0.027151498821544103,
			0.000000000000000013,
			0.049507622881582232,
			-0.000000000000000017,
			-0.097347574494857106,
			0.000000000000000019,
			0.316324531370552109,
			0.501805599399402946,
			0.316324531370552109,
			0.000000000000000019,
			-0.097347574494857106,
			-0.000000000000000017,
			0.049507622881582232,
			0.000000000000000013,
			-0.027151498821544103,
			-0.000000000000000010,
			0.014280311428581572,
			0.000000000000000006,
			-0.006516192064016197,
			-0.000000000000000003,
		},
	},
}
