package lower

import "qasmc/syntax"

// gateSig is the declared classical and quantum arity of a library gate.
type gateSig struct {
	cArity, qArity int
}

// stdGates is the gate set of stdgates.inc, the OpenQASM 3 standard library.
var stdGates = map[string]gateSig{
	"p":      {1, 1},
	"x":      {0, 1},
	"y":      {0, 1},
	"z":      {0, 1},
	"h":      {0, 1},
	"s":      {0, 1},
	"sdg":    {0, 1},
	"t":      {0, 1},
	"tdg":    {0, 1},
	"sx":     {0, 1},
	"rx":     {1, 1},
	"ry":     {1, 1},
	"rz":     {1, 1},
	"cx":     {0, 2},
	"cy":     {0, 2},
	"cz":     {0, 2},
	"cp":     {1, 2},
	"crx":    {1, 2},
	"cry":    {1, 2},
	"crz":    {1, 2},
	"ch":     {0, 2},
	"swap":   {0, 2},
	"ccx":    {0, 3},
	"cswap":  {0, 3},
	"cu":     {4, 2},
	"CX":     {0, 2},
	"phase":  {1, 1},
	"cphase": {1, 2},
	"id":     {0, 1},
	"u1":     {1, 1},
	"u2":     {2, 1},
	"u3":     {3, 1},
}

// qelib1Gates is the gate set of qelib1.inc, the OpenQASM 2 standard library.
var qelib1Gates = map[string]gateSig{
	"u3":   {3, 1},
	"u2":   {2, 1},
	"u1":   {1, 1},
	"cx":   {0, 2},
	"id":   {0, 1},
	"u0":   {1, 1},
	"x":    {0, 1},
	"y":    {0, 1},
	"z":    {0, 1},
	"h":    {0, 1},
	"s":    {0, 1},
	"sdg":  {0, 1},
	"t":    {0, 1},
	"tdg":  {0, 1},
	"rx":   {1, 1},
	"ry":   {1, 1},
	"rz":   {1, 1},
	"cz":   {0, 2},
	"cy":   {0, 2},
	"ch":   {0, 2},
	"ccx":  {0, 3},
	"crz":  {1, 2},
	"cu1":  {1, 2},
	"cu3":  {3, 2},
	"swap": {0, 2},
}

// extraGates holds the gates common circuit generators emit beyond the
// standard library.  They are declared lazily: referencing one after including
// the standard library defines it on first use.
var extraGates = map[string]gateSig{
	"rxx":        {1, 2},
	"ryy":        {1, 2},
	"rzz":        {1, 2},
	"rzx":        {1, 2},
	"dcx":        {0, 2},
	"ecr":        {0, 2},
	"r":          {2, 1},
	"cs":         {0, 2},
	"csdg":       {0, 2},
	"sxdg":       {0, 1},
	"csx":        {0, 2},
	"cu1":        {1, 2},
	"cu3":        {3, 2},
	"rccx":       {0, 3},
	"c3sqrtx":    {0, 4},
	"c3x":        {0, 4},
	"rc3x":       {0, 4},
	"ccz":        {0, 3},
	"xx_minus_yy": {2, 2},
	"xx_plus_yy":  {2, 2},
}

// -----------------------------------------------------------------------------

// implicitModifier is a gate name that lowers to a different gate wrapped in
// an implicit modifier, eg. `cy` is `ctrl @ y`.
type implicitModifier struct {
	base  string
	kind  syntax.GateModifierKind
	ctrls int
}

// implicitGateModifiers maps the derived library gates onto their base gate
// and the modifier the derivation applies.
var implicitGateModifiers = map[string]implicitModifier{
	"cy":     {"y", syntax.ModCtrl, 1},
	"cz":     {"z", syntax.ModCtrl, 1},
	"ch":     {"h", syntax.ModCtrl, 1},
	"crx":    {"rx", syntax.ModCtrl, 1},
	"cry":    {"ry", syntax.ModCtrl, 1},
	"crz":    {"rz", syntax.ModCtrl, 1},
	"cswap":  {"swap", syntax.ModCtrl, 1},
	"CX":     {"x", syntax.ModCtrl, 1},
	"cphase": {"phase", syntax.ModCtrl, 1},
	"sdg":    {"s", syntax.ModInv, 0},
	"tdg":    {"t", syntax.ModInv, 0},
}
