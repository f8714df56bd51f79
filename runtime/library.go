package runtime

// preludeSources are evaluated into the root environment after the natives
// are installed.
var preludeSources = []string{
	`
let map = fn(arr, f) {
  let out = [];
  let i = 0;
  while (i < len(arr)) {
    push(out, f(arr[i]));
    i = i + 1;
  }
  out
};
`,
	`
let filter = fn(arr, keep) {
  let out = [];
  let i = 0;
  while (i < len(arr)) {
    if (keep(arr[i])) { push(out, arr[i]); }
    i = i + 1;
  }
  out
};
`,
	`
let reduce = fn(arr, f, acc) {
  let i = 0;
  while (i < len(arr)) {
    acc = f(acc, arr[i]);
    i = i + 1;
  }
  acc
};
`,
	`
let range = fn(n) {
  let out = [];
  let i = 0;
  while (i < n) {
    push(out, i);
    i = i + 1;
  }
  out
};
`,
}
