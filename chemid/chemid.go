/*
 * chemid.go, part of gorxn.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

//Package chemid connects molecular graphs to external line identifiers, such as
//InChI strings, produced by an Encoder. Encoders are often unreliable with
//stereo, so the stereo layers of their output are recomputed from the graph and
//replaced where they disagree.
package chemid

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	chem "github.com/rmera/gorxn"
)

var logger = zap.NewNop()

//SetLogger sets the logger used to report corrected identifiers. nil disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

//Encoder turns a graph into an identifier. The graph it gets has explicit
//hydrogens, Kekule bond orders, keys 0..n-1 and parities in the local frame.
//order lists the graph keys in the canonical numbering of the identifier:
//order[i] is the key of atom i+1. Atoms the identifier does not number, usually
//hydrogens, are left out.
type Encoder interface {
	Encode(g *chem.Graph) (id string, order []int, err error)
}

//Identify returns the identifier of g given by enc, with its atom (/t) and bond
//(/b) stereo layers recomputed from the graph. A component whose stereo cannot be
//written in the encoder's numbering keeps the encoder's own text.
func Identify(enc Encoder, g *chem.Graph) (string, error) {
	kg, err := chem.Kekulize(chem.Explicit(g))
	if err != nil {
		return "", chem.ErrDecorate(err, "Identify")
	}
	kg, _ = kg.Contiguous()
	id, order, err := enc.Encode(chem.ToLocal(kg))
	if err != nil {
		return "", chem.ErrDecorate(err, "Identify")
	}
	prefix, layers, err := ParseLayers(id)
	if err != nil {
		return "", chem.ErrDecorate(err, "Identify")
	}
	t, b, err := stereoLayers(kg, order)
	if err != nil {
		return "", chem.ErrDecorate(err, "Identify")
	}
	layers = correct(layers, 'b', b)
	layers = correct(layers, 't', t)
	//the enantiomer and stereo-type layers mean nothing on their own
	_, hasT := Get(layers, 't')
	_, hasB := Get(layers, 'b')
	if !hasT {
		layers = Set(layers, 'm', "")
	}
	if !hasT && !hasB {
		layers = Set(layers, 's', "")
	}
	return JoinLayers(prefix, layers), nil
}

//compLayer is the stereo text of one component, or ok false if its stereo
//cannot be written in the encoder's numbering.
type compLayer struct {
	text string
	ok   bool
}

//stereoLayers computes the atom and bond stereo layers of g, one entry per
//component, in the canonical numbering given by order.
func stereoLayers(g *chem.Graph, order []int) ([]compLayer, []compLayer, error) {
	num := make(map[int]int, len(order))
	for i, k := range order {
		if !g.HasAtom(k) {
			return nil, nil, chem.NewError(chem.ErrStructural, "stereoLayers", "chemid: encoder numbered atom %d, which is not in the graph", k)
		}
		if _, ok := num[k]; ok {
			return nil, nil, chem.NewError(chem.ErrStructural, "stereoLayers", "chemid: encoder numbered atom %d twice", k)
		}
		num[k] = i + 1
	}
	m := len(order)
	rel := make(map[int]int, g.Len())
	for _, k := range g.Keys() {
		if n, ok := num[k]; ok {
			rel[k] = n
		} else {
			rel[k] = m + 1 + k
		}
	}
	ng, err := g.Relabel(rel)
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, "stereoLayers")
	}
	local := chem.ToLocal(ng)
	numbered := func(k int) bool { return k <= m }
	heavyNumbered := func(ks ...int) bool {
		for _, k := range ks {
			a, _ := local.Atom(k)
			if !numbered(k) && a.Symbol != "H" {
				return false
			}
		}
		return true
	}
	var comps [][]int
	for _, c := range local.Components() {
		if numbered(c[0]) {
			comps = append(comps, c)
		}
	}
	tl := make([]compLayer, len(comps))
	bl := make([]compLayer, len(comps))
	for i, c := range comps {
		var at, bo []string
		tl[i].ok, bl[i].ok = true, true
		in := make(map[int]bool, len(c))
		for _, k := range c {
			in[k] = true
		}
		for _, k := range c {
			a, _ := local.Atom(k)
			if !a.Parity.IsSet() {
				continue
			}
			if !numbered(k) || !heavyNumbered(local.Neighbors(k)...) {
				tl[i].ok = false
				continue
			}
			at = append(at, strconv.Itoa(k)+sign(a.Parity))
		}
		for _, bk := range local.BondKeys() {
			b, _ := local.Bond(bk[0], bk[1])
			if !in[bk[0]] || !b.Parity.IsSet() {
				continue
			}
			if !numbered(bk[0]) || !numbered(bk[1]) || !heavyNumbered(local.Neighbors(bk[0])...) || !heavyNumbered(local.Neighbors(bk[1])...) {
				bl[i].ok = false
				continue
			}
			bo = append(bo, fmt.Sprintf("%d-%d%s", bk[1], bk[0], sign(b.Parity)))
		}
		tl[i].text = strings.Join(at, ",")
		bl[i].text = strings.Join(bo, ",")
	}
	return tl, bl, nil
}

func sign(p chem.Parity) string {
	if p.Bool() {
		return "+"
	}
	return "-"
}

//correct replaces the layer key of layers by the recomputed one, keeping the
//emitted text of the components that cannot be recomputed.
func correct(layers []Layer, key byte, comps []compLayer) []Layer {
	emitted, _ := Get(layers, key)
	parts := strings.Split(emitted, ";")
	final := make([]string, len(comps))
	empty := true
	for i, c := range comps {
		if c.ok {
			final[i] = c.text
		} else {
			if i < len(parts) {
				final[i] = parts[i]
			}
			logger.Warn("stereo not expressible in the identifier numbering, keeping the encoder's layer",
				zap.String("layer", string(key)), zap.Int("component", i), zap.String("text", final[i]))
		}
		if final[i] != "" {
			empty = false
		}
	}
	text := ""
	if !empty {
		text = strings.Join(final, ";")
	}
	if text == emitted {
		return layers
	}
	logger.Info("correcting identifier stereo layer", zap.String("layer", string(key)),
		zap.String("emitted", emitted), zap.String("computed", text))
	return Set(layers, key, text)
}

//Layer is one "/"-separated layer of an identifier. The formula layer has Key 0.
type Layer struct {
	Key  byte
	Text string
}

//ParseLayers splits an identifier such as "InChI=1S/C2H6O/c1-2-3/h3H,2H2,1H3"
//into its prefix and layers.
func ParseLayers(id string) (string, []Layer, error) {
	parts := strings.Split(strings.TrimSpace(id), "/")
	if parts[0] == "" {
		return "", nil, chem.NewError(nil, "ParseLayers", "chemid: empty identifier %q", id)
	}
	var layers []Layer
	for i, p := range parts[1:] {
		if i == 0 && (p == "" || p[0] < 'a' || p[0] > 'z') {
			layers = append(layers, Layer{Text: p})
			continue
		}
		if p == "" {
			return "", nil, chem.NewError(nil, "ParseLayers", "chemid: empty layer in %q", id)
		}
		layers = append(layers, Layer{Key: p[0], Text: p[1:]})
	}
	return parts[0], layers, nil
}

//JoinLayers is the inverse of ParseLayers.
func JoinLayers(prefix string, layers []Layer) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, l := range layers {
		b.WriteByte('/')
		if l.Key != 0 {
			b.WriteByte(l.Key)
		}
		b.WriteString(l.Text)
	}
	return b.String()
}

//Get returns the text of the first layer with the given key.
func Get(layers []Layer, key byte) (string, bool) {
	for _, l := range layers {
		if l.Key == key {
			return l.Text, true
		}
	}
	return "", false
}

//layerOrder is the order of the main layers of an InChI string.
const layerOrder = "chqpbtmsifr"

func rank(key byte) int {
	if key == 0 {
		return -1
	}
	if i := strings.IndexByte(layerOrder, key); i >= 0 {
		return i
	}
	return len(layerOrder)
}

//Set returns a copy of layers where the layer key has the given text. An empty
//text removes the layer. A new layer is placed before the first layer that
//follows it in the InChI order.
func Set(layers []Layer, key byte, text string) []Layer {
	r := make([]Layer, 0, len(layers)+1)
	done := false
	for _, l := range layers {
		if l.Key == key {
			if !done && text != "" {
				r = append(r, Layer{Key: key, Text: text})
			}
			done = true
			continue
		}
		if !done && text != "" && rank(l.Key) > rank(key) {
			r = append(r, Layer{Key: key, Text: text})
			done = true
		}
		r = append(r, l)
	}
	if !done && text != "" {
		r = append(r, Layer{Key: key, Text: text})
	}
	return r
}

//ParseAuxOrder reads the canonical numbering from the "N:" layer of an InChI
//AuxInfo string, and returns it as 0-based atom indices.
func ParseAuxOrder(aux string) ([]int, error) {
	for _, p := range strings.Split(aux, "/") {
		if !strings.HasPrefix(p, "N:") {
			continue
		}
		var order []int
		for _, comp := range strings.Split(p[2:], ";") {
			for _, f := range strings.Split(comp, ",") {
				n, err := strconv.Atoi(f)
				if err != nil || n < 1 {
					return nil, chem.NewError(nil, "ParseAuxOrder", "chemid: bad atom number %q in %q", f, p)
				}
				order = append(order, n-1)
			}
		}
		return order, nil
	}
	return nil, chem.NewError(nil, "ParseAuxOrder", "chemid: no N: layer in %q", aux)
}
