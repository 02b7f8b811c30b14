package commands

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bloomify/beatforge/cmd/beatforge/internal/config"
	"github.com/bloomify/beatforge/pkg/beatmap"
	"github.com/bloomify/beatforge/pkg/cli"
	"github.com/bloomify/beatforge/pkg/mapgen"
)

var (
	genMode        string
	genLanes       int
	genDifficulty  float64
	genSubdivision int
	genMinStream   float64
	genChordChance float64
	genPercentile  float64
	genSeed        uint64
	genOutput      string
	genTitle       string
	genArtist      string
	genMapper      string
	genImage       string
	genNoCache     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [audio-file]",
	Short: "Generate a beatmap from an analyzed audio file",
	Long: `Generate a beatmap from an audio file and its analysis sidecar.

With no argument, the first audio file in the working directory is used.
The analysis sidecar (song.analysis.json or song.analysis.msgpack, written
by the external analyzer) must sit next to the audio file.

The output file defaults to <name>_<mode>_autogen.json next to the audio.

Examples:
  beatforge generate
  beatforge generate song.mp3 --mode expert --stream-subdivision 6 \
    --min-stream-beats 8 --chord-chance 0.2
  beatforge generate song.mp3 --mode smart --difficulty 0.4 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.Load()
		if err != nil {
			return err
		}

		// Resolve the audio file: explicit argument, or directory scan.
		var audioPath string
		if len(args) == 1 {
			audioPath = args[0]
			if _, err := os.Stat(audioPath); err != nil {
				return fmt.Errorf("audio file: %w", err)
			}
		} else {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			audioPath, err = findAudioFile(wd)
			if err != nil {
				return err
			}
			if IsVerbose() {
				fmt.Fprintf(os.Stderr, "found audio file: %s\n", audioPath)
			}
		}

		mode := genMode
		if !cmd.Flags().Changed("mode") && fileCfg.Mode != "" {
			mode = fileCfg.Mode
		}
		gen := mapgen.DefaultConfig(mapgen.Profile(mode))
		fileCfg.Apply(&gen)
		applyGenerateFlags(cmd, &gen)
		if err := gen.Validate(); err != nil {
			return err
		}

		// Load the analysis, through the cache unless disabled.
		store := openCache(fileCfg.CacheDir())
		if genNoCache {
			store = nil
		}
		if store != nil {
			defer store.Close()
		}
		a, cached, err := loadAnalysis(cmd.Context(), audioPath, store)
		if err != nil {
			return err
		}
		if IsVerbose() {
			fmt.Fprintf(os.Stderr, "analysis: bpm=%.2f beats=%d onsets=%d cached=%v\n",
				a.BPM, len(a.BeatTimes), len(a.OnsetTimes), cached)
		}

		meta := buildMeta(cmd, fileCfg, audioPath, gen.Profile)

		seed := genSeed
		if !cmd.Flags().Changed("seed") {
			seed = uint64(time.Now().UnixNano())
		}
		rng := rand.New(rand.NewPCG(seed, seed))

		res, err := mapgen.Generate(a, meta, gen, rng)
		if err != nil {
			return err
		}

		outPath := genOutput
		if outPath == "" {
			outPath = filepath.Join(filepath.Dir(audioPath),
				fmt.Sprintf("%s_%s_autogen.json", audioStem(audioPath), gen.Profile))
		}
		if err := beatmap.WriteFile(outPath, res.Beatmap); err != nil {
			return err
		}

		printSummary(res, gen, outPath, seed, cached)
		return nil
	},
}

// applyGenerateFlags overlays explicitly set flags onto the generator config.
func applyGenerateFlags(cmd *cobra.Command, gen *mapgen.Config) {
	if cmd.Flags().Changed("lanes") {
		gen.Lanes = genLanes
	}
	if cmd.Flags().Changed("difficulty") {
		gen.Difficulty = genDifficulty
	}
	if cmd.Flags().Changed("stream-subdivision") {
		gen.StreamSubdivision = genSubdivision
	}
	if cmd.Flags().Changed("min-stream-beats") {
		gen.MinStreamBeats = genMinStream
	}
	if cmd.Flags().Changed("chord-chance") {
		gen.ChordChance = genChordChance
	}
	if cmd.Flags().Changed("energy-percentile") {
		gen.EnergyPercentile = genPercentile
	}
}

// buildMeta assembles song metadata: flags win over the config file, which
// wins over per-mode defaults.
func buildMeta(cmd *cobra.Command, fileCfg *config.Config, audioPath string, profile mapgen.Profile) mapgen.Meta {
	meta := mapgen.Meta{
		Title:     audioStem(audioPath),
		AudioPath: filepath.Base(audioPath),
		ImagePath: "art.png",
	}
	switch profile {
	case mapgen.ProfileExpert:
		meta.Artist, meta.Mapper = "Unknown Artist", "StreamGenerator"
	case mapgen.ProfileSmart:
		meta.Artist, meta.Mapper = "Unknown Artist", "SmartGenerator"
	default:
		meta.Artist, meta.Mapper = "BLOOMIFY Engine", fmt.Sprintf("ConfigurableGenerator (%s)", profile)
	}

	if fileCfg.Artist != "" {
		meta.Artist = fileCfg.Artist
	}
	if fileCfg.Mapper != "" {
		meta.Mapper = fileCfg.Mapper
	}
	if fileCfg.ImagePath != "" {
		meta.ImagePath = fileCfg.ImagePath
	}
	if cmd.Flags().Changed("title") {
		meta.Title = genTitle
	}
	if cmd.Flags().Changed("artist") {
		meta.Artist = genArtist
	}
	if cmd.Flags().Changed("mapper") {
		meta.Mapper = genMapper
	}
	if cmd.Flags().Changed("image") {
		meta.ImagePath = genImage
	}
	return meta
}

func printSummary(res *mapgen.Result, gen mapgen.Config, outPath string, seed uint64, cached bool) {
	rows := []cli.Row{
		{Label: "run", Value: uuid.NewString()},
		{Label: "mode", Value: string(gen.Profile)},
		{Label: "bpm", Value: strconv.FormatFloat(res.Beatmap.BPM, 'f', 2, 64)},
		{Label: "notes", Value: strconv.Itoa(res.Stats.Notes)},
	}
	if gen.Profile == mapgen.ProfileExpert {
		rows = append(rows,
			cli.Row{Label: "streams", Value: strconv.Itoa(res.Stats.StreamSections)},
			cli.Row{Label: "pattern", Value: res.Stats.Pattern},
		)
	} else {
		rows = append(rows, cli.Row{Label: "onsets", Value: fmt.Sprintf("%d/%d kept",
			res.Stats.OnsetsKept, res.Stats.OnsetsDetected)})
	}
	if res.Beatmap.SongLengthMS != nil {
		rows = append(rows, cli.Row{Label: "length", Value: cli.FormatDuration(*res.Beatmap.SongLengthMS)})
	}
	rows = append(rows,
		cli.Row{Label: "seed", Value: strconv.FormatUint(seed, 10)},
		cli.Row{Label: "cache", Value: map[bool]string{true: "hit", false: "miss"}[cached]},
		cli.Row{Label: "output", Value: outPath},
	)

	summary := cli.Summary{
		Styles: cli.NewStyles(cli.DefaultTheme),
		Title:  fmt.Sprintf("beatmap generated: %s", res.Beatmap.Title),
		Rows:   rows,
	}
	fmt.Print(summary.Render())
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genMode, "mode", "m", "expert", "generator mode: chaotic, smart, expert")
	f.IntVar(&genLanes, "lanes", 4, "number of lanes")
	f.Float64VarP(&genDifficulty, "difficulty", "d", 1.0, "smart mode difficulty in [0,1]; 1 keeps every onset")
	f.IntVar(&genSubdivision, "stream-subdivision", 4, "notes per beat inside streams (4=1/4, 6=triplets, 8=1/8)")
	f.Float64Var(&genMinStream, "min-stream-beats", 4.0, "beats of sustained energy required to open a stream")
	f.Float64Var(&genChordChance, "chord-chance", 0.25, "chance of a chord on an expert-mode downbeat, in [0,1]")
	f.Float64Var(&genPercentile, "energy-percentile", 60, "RMS percentile above which a beat counts as high-energy")
	f.Uint64Var(&genSeed, "seed", 0, "random seed for lane choices (default: time-based)")
	f.StringVarP(&genOutput, "output", "o", "", "output beatmap path (default <name>_<mode>_autogen.json)")
	f.StringVar(&genTitle, "title", "", "beatmap title (default: audio file name)")
	f.StringVar(&genArtist, "artist", "", "artist metadata")
	f.StringVar(&genMapper, "mapper", "", "mapper metadata")
	f.StringVar(&genImage, "image", "", "cover image path metadata")
	f.BoolVar(&genNoCache, "no-cache", false, "bypass the analysis cache")
	rootCmd.AddCommand(generateCmd)
}
