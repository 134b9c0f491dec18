package client

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"github.com/treeforest/basex/internal/service"
	log "github.com/treeforest/logger"
	"io"
	"io/ioutil"
	"strings"
)

// Codec is served locally by *service.Service and remotely by *HttpClient.
type Codec interface {
	Encode(alphabet string, data []byte) (string, error)
	Decode(alphabet, encoded string) ([]byte, error)
	Random(alphabet string, n int) (string, error)
	Alphabets() ([]service.Entry, error)
	Register(name, symbols string) error
	Remove(name string) error
}

type Command struct {
	codec    Codec
	alphabet string // 默认字符表
	in       io.Reader
	out      io.Writer
}

func NewCommand(codec Codec, alphabet string, in io.Reader, out io.Writer) *Command {
	return &Command{codec: codec, alphabet: alphabet, in: in, out: out}
}

func (c *Command) printUsage() {
	fmt.Fprintln(c.out, "Usage:")
	// 编码
	fmt.Fprintf(c.out, "\tencode [-alphabet NAME] [-hex HEX | -text TEXT] -- 编码，缺省时读取标准输入\n")
	// 解码
	fmt.Fprintf(c.out, "\tdecode [-alphabet NAME] [-raw] [STRING] -- 解码并输出十六进制，缺省时读取标准输入\n")
	fmt.Fprintf(c.out, "\t\t-raw -- 输出原始字节\n")
	// 随机串
	fmt.Fprintf(c.out, "\trandom [-alphabet NAME] [-n N] -- 编码 N 个随机字节\n")
	// 字符表
	fmt.Fprintf(c.out, "\talphabets -- 输出所有字符表\n")
	fmt.Fprintf(c.out, "\taddalphabet -name NAME -symbols SYMBOLS -- 保存自定义字符表\n")
	fmt.Fprintf(c.out, "\trmalphabet -name NAME -- 删除自定义字符表\n")
	// 服务
	fmt.Fprintf(c.out, "\tserve [-port PORT] -- 启动 http 服务\n")
}

// Run executes the sub-command named by args[0]. Usage errors print the help
// text and return nil.
func (c *Command) Run(args []string) error {
	// 编码
	cmdEncode := c.newFlagSet("encode")
	encodeAlphabet := cmdEncode.String("alphabet", c.alphabet, "字符表名称")
	encodeHex := cmdEncode.String("hex", "", "十六进制输入")
	encodeText := cmdEncode.String("text", "", "文本输入")
	// 解码
	cmdDecode := c.newFlagSet("decode")
	decodeAlphabet := cmdDecode.String("alphabet", c.alphabet, "字符表名称")
	decodeRaw := cmdDecode.Bool("raw", false, "输出原始字节")
	// 随机串
	cmdRandom := c.newFlagSet("random")
	randomAlphabet := cmdRandom.String("alphabet", c.alphabet, "字符表名称")
	randomN := cmdRandom.Int("n", 16, "随机字节数")
	// 字符表
	cmdAlphabets := c.newFlagSet("alphabets")
	cmdAddAlphabet := c.newFlagSet("addalphabet")
	addName := cmdAddAlphabet.String("name", "", "字符表名称")
	addSymbols := cmdAddAlphabet.String("symbols", "", "字符表")
	cmdRmAlphabet := c.newFlagSet("rmalphabet")
	rmName := cmdRmAlphabet.String("name", "", "字符表名称")

	if len(args) < 1 {
		c.printUsage()
		return nil
	}

	switch args[0] {
	case "encode":
		if !parseCommand(cmdEncode, args[1:]) || *encodeAlphabet == "" || (*encodeHex != "" && *encodeText != "") {
			goto HELP
		}
		return c.encode(*encodeAlphabet, *encodeHex, *encodeText)
	case "decode":
		if !parseCommand(cmdDecode, args[1:]) || *decodeAlphabet == "" || cmdDecode.NArg() > 1 {
			goto HELP
		}
		return c.decode(*decodeAlphabet, cmdDecode.Arg(0), cmdDecode.NArg() == 1, *decodeRaw)
	case "random":
		if !parseCommand(cmdRandom, args[1:]) || *randomAlphabet == "" || *randomN < 0 {
			goto HELP
		}
		return c.random(*randomAlphabet, *randomN)
	case "alphabets":
		if !parseCommand(cmdAlphabets, args[1:]) {
			goto HELP
		}
		return c.printAlphabets()
	case "addalphabet":
		if !parseCommand(cmdAddAlphabet, args[1:]) || *addName == "" || *addSymbols == "" {
			goto HELP
		}
		return c.addAlphabet(*addName, *addSymbols)
	case "rmalphabet":
		if !parseCommand(cmdRmAlphabet, args[1:]) || *rmName == "" {
			goto HELP
		}
		return c.removeAlphabet(*rmName)
	default:
		goto HELP
	}
HELP:
	c.printUsage()
	return nil
}

func (c *Command) newFlagSet(name string) *flag.FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(c.out)
	return f
}

func (c *Command) encode(alphabet, hexInput, text string) error {
	var (
		data []byte
		err  error
	)
	switch {
	case hexInput != "":
		data, err = hex.DecodeString(hexInput)
		if err != nil {
			return fmt.Errorf("invalid hex input: %v", err)
		}
	case text != "":
		data = []byte(text)
	default:
		data, err = ioutil.ReadAll(c.in)
		if err != nil {
			return fmt.Errorf("read stdin failed: %v", err)
		}
	}

	log.Debugf("encode %d bytes with %s", len(data), alphabet)
	encoded, err := c.codec.Encode(alphabet, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, encoded)
	return nil
}

func (c *Command) decode(alphabet, input string, hasArg, raw bool) error {
	if !hasArg {
		data, err := ioutil.ReadAll(c.in)
		if err != nil {
			return fmt.Errorf("read stdin failed: %v", err)
		}
		input = strings.TrimSpace(string(data))
	}

	log.Debugf("decode %d symbols with %s", len(input), alphabet)
	data, err := c.codec.Decode(alphabet, input)
	if err != nil {
		return err
	}
	if raw {
		_, err = io.Copy(c.out, bytes.NewReader(data))
		return err
	}
	fmt.Fprintln(c.out, hex.EncodeToString(data))
	return nil
}

func (c *Command) random(alphabet string, n int) error {
	encoded, err := c.codec.Random(alphabet, n)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, encoded)
	return nil
}

func (c *Command) printAlphabets() error {
	entries, err := c.codec.Alphabets()
	if err != nil {
		return err
	}
	for _, e := range entries {
		kind := "custom"
		if e.Builtin {
			kind = "builtin"
		}
		fmt.Fprintf(c.out, "%s\t%d\t%s\t%s\n", e.Name, len(e.Symbols), kind, e.Symbols)
	}
	return nil
}

func (c *Command) addAlphabet(name, symbols string) error {
	if err := c.codec.Register(name, symbols); err != nil {
		return err
	}
	log.Infof("add alphabet %s success", name)
	return nil
}

func (c *Command) removeAlphabet(name string) error {
	if err := c.codec.Remove(name); err != nil {
		return err
	}
	log.Info("remove alphabet success")
	return nil
}
