package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lwch/bpe"
	"github.com/lwch/logging"
	"github.com/lwch/runtime"
	"github.com/spf13/cobra"
)

var (
	output    string
	state     string
	vocabSize int
	specials  []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bpe",
		Short: "byte-level BPE tokenizer",
	}
	trainCmd := &cobra.Command{
		Use:   "train file...",
		Short: "learn a vocabulary from UTF-8 text files",
		Args:  cobra.MinimumNArgs(1),
		Run:   runTrain,
	}
	trainCmd.Flags().StringVarP(&output, "output", "o", "tokenizer.json", "file the trained state is written to")
	trainCmd.Flags().IntVar(&vocabSize, "vocab-size", 2048, "total vocabulary size, special tokens included")
	trainCmd.Flags().StringSliceVar(&specials, "special",
		[]string{"<|pad|>", "<|recipe_start|>", "<|recipe_end|>", "<|oov|>"},
		"special tokens, ids assigned from the top of the vocabulary down")
	encodeCmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "print token ids for text from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		Run:   runEncode,
	}
	decodeCmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "print text for whitespace-separated token ids from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		Run:   runDecode,
	}
	for _, cmd := range []*cobra.Command{encodeCmd, decodeCmd} {
		cmd.Flags().StringVarP(&state, "tokenizer", "t", "tokenizer.json", "trained state to load")
	}
	rootCmd.AddCommand(trainCmd, encodeCmd, decodeCmd)
	runtime.Assert(rootCmd.Execute())
}

func runTrain(_ *cobra.Command, args []string) {
	if vocabSize-len(specials) < 256 {
		logging.Error("vocab size %d leaves no room for %d special tokens", vocabSize, len(specials))
		os.Exit(1)
	}
	tokens := make(map[string]int, len(specials))
	for i, name := range specials {
		tokens[name] = vocabSize - 1 - i
	}
	tk := bpe.New()
	runtime.Assert(tk.TrainFiles(args, vocabSize-len(specials)))
	tk.RegisterSpecials(bpe.NewSpecials(tokens))
	runtime.Assert(tk.Save(output))
	logging.Info("saved %s, vocab size %d", output, tk.VocabSize())
}

func runEncode(_ *cobra.Command, args []string) {
	tk := load()
	ids := tk.Encode(readAll(args))
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.Itoa(id)
	}
	fmt.Println(strings.Join(strs, " "))
}

func runDecode(_ *cobra.Command, args []string) {
	tk := load()
	fields := strings.Fields(readAll(args))
	ids := make([]int, len(fields))
	for i, field := range fields {
		id, err := strconv.Atoi(field)
		runtime.Assert(err)
		ids[i] = id
	}
	text, err := tk.Decode(ids)
	runtime.Assert(err)
	fmt.Print(text)
}

func load() *bpe.Tokenizer {
	tk := bpe.New()
	runtime.Assert(tk.Load(state))
	return tk
}

func readAll(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		runtime.Assert(err)
		return string(data)
	}
	data, err := os.ReadFile(args[0])
	runtime.Assert(err)
	return string(data)
}
